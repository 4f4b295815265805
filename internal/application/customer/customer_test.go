package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/customer"
	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/infrastructure/memory"
	"github.com/jhoicas/Customers-api/internal/mocks"
)

func strPtr(s string) *string { return &s }

func anaRequest() dto.AddCustomerRequest {
	return dto.AddCustomerRequest{
		Name:     "Ana",
		Email:    "ana@x.com",
		Document: "123.456.789-00",
		Phone:    "(11)99999-0000",
		Status:   "ACTIVE",
	}
}

func TestAddCustomer_PersistsAndPublishes(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	events := mocks.NewEventPublisher(t)

	var sent entity.NewCustomer
	repo.On("Add", mock.Anything, mock.MatchedBy(func(nc entity.NewCustomer) bool {
		sent = nc
		return nc.Name == "Ana" && nc.Email == "ana@x.com" && nc.Document == "123.456.789-00" &&
			nc.Phone == "(11)99999-0000" && nc.Status == entity.StatusActive && !nc.CreatedAt.IsZero()
	})).Return("id-1", nil).Once()
	events.On("Publish", mock.Anything, mock.MatchedBy(func(ev ports.CustomerEvent) bool {
		return ev.Type == ports.CustomerCreated && ev.CustomerID == "id-1" && ev.Fields["name"] == "Ana"
	})).Return(nil).Once()

	uc := customer.NewAddCustomerUseCase(repo, events, nil)
	out, err := uc.Execute(context.Background(), anaRequest())

	require.NoError(t, err)
	assert.Equal(t, "id-1", out.ID)
	assert.Equal(t, "ACTIVE", out.Status)
	require.NotNil(t, out.CreatedAt)
	require.NotNil(t, out.UpdatedAt)
	assert.True(t, sent.CreatedAt.Equal(*out.CreatedAt))
	assert.True(t, out.CreatedAt.Equal(*out.UpdatedAt))
}

func TestAddCustomer_ValidationSkipsRepository(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	uc := customer.NewAddCustomerUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), dto.AddCustomerRequest{Name: "  ", Status: "UNKNOWN", Phone: "abc"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "status")
	assert.Contains(t, ve.Fields, "phone")
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAddCustomer_RepositoryErrorIsReturnedAsIs(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	boom := domain.NewRepositoryError("add", errors.New("conexión rechazada"))
	repo.On("Add", mock.Anything, mock.Anything).Return("", boom).Once()

	uc := customer.NewAddCustomerUseCase(repo, nil, nil)
	_, err := uc.Execute(context.Background(), anaRequest())

	assert.Same(t, boom, err)
}

func TestAddCustomer_PublishFailureIsNotReturned(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	events := mocks.NewEventPublisher(t)
	repo.On("Add", mock.Anything, mock.Anything).Return("id-1", nil).Once()
	events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats caído")).Once()

	uc := customer.NewAddCustomerUseCase(repo, events, nil)
	_, err := uc.Execute(context.Background(), anaRequest())

	assert.NoError(t, err)
}

func TestFindCustomers_NeverNil(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	repo.On("FindAll", mock.Anything, entity.CustomerFilter{Search: "ana"}).Return(nil, nil).Once()

	uc := customer.NewFindCustomersUseCase(repo, nil)
	out, err := uc.Execute(context.Background(), dto.FindCustomersQuery{Search: " ana "})

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestUpdateCustomer_SendsOnlySuppliedFields(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	events := mocks.NewEventPublisher(t)
	disabled := entity.StatusDisabled
	repo.On("Update", mock.Anything, "id-1", entity.CustomerPatch{Status: &disabled}).Return(nil).Once()
	events.On("Publish", mock.Anything, mock.MatchedBy(func(ev ports.CustomerEvent) bool {
		return ev.Type == ports.CustomerUpdated && len(ev.Fields) == 1 && ev.Fields["status"] == "DISABLED"
	})).Return(nil).Once()

	uc := customer.NewUpdateCustomerUseCase(repo, events, nil)
	err := uc.Execute(context.Background(), "id-1", dto.UpdateCustomerRequest{Status: strPtr("disabled")})

	assert.NoError(t, err)
}

func TestUpdateCustomer_Rejections(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	uc := customer.NewUpdateCustomerUseCase(repo, nil, nil)
	ctx := context.Background()

	cases := map[string]struct {
		id string
		in dto.UpdateCustomerRequest
	}{
		"id vacío":        {id: " ", in: dto.UpdateCustomerRequest{Name: strPtr("x")}},
		"patch vacío":     {id: "id-1", in: dto.UpdateCustomerRequest{}},
		"nombre vacío":    {id: "id-1", in: dto.UpdateCustomerRequest{Name: strPtr("")}},
		"estado inválido": {id: "id-1", in: dto.UpdateCustomerRequest{Status: strPtr("BLOCKED")}},
		"documento mal":   {id: "id-1", in: dto.UpdateCustomerRequest{Document: strPtr("12a")}},
		"email vacío":     {id: "id-1", in: dto.UpdateCustomerRequest{Email: strPtr("")}},
		"documento vacío": {id: "id-1", in: dto.UpdateCustomerRequest{Document: strPtr("")}},
		"teléfono blanco": {id: "id-1", in: dto.UpdateCustomerRequest{Phone: strPtr("  ")}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := uc.Execute(ctx, tc.id, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCustomer_NotFoundPropagates(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	repo.On("Delete", mock.Anything, "nope").
		Return(domain.NewRepositoryError("delete", domain.ErrNotFound)).Once()

	uc := customer.NewDeleteCustomerUseCase(repo, nil, nil)
	err := uc.Execute(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCustomer_MapsEntity(t *testing.T) {
	repo := mocks.NewCustomerRepository(t)
	repo.On("GetByID", mock.Anything, "id-1").Return(&entity.Customer{ID: "id-1", Name: "Ana", Status: entity.StatusInactive}, nil).Once()

	uc := customer.NewGetCustomerUseCase(repo, nil)
	out, err := uc.Execute(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "INACTIVE", out.Status)
	assert.Nil(t, out.CreatedAt)
}

// Escenarios de punta a punta sobre el repositorio en memoria.

func TestScenario_AnaIsRetrievable(t *testing.T) {
	ucs := composer.New(memory.NewCustomerRepo(), nil, nil).All()
	ctx := context.Background()

	added, err := ucs.Add.Execute(ctx, anaRequest())
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	list, err := ucs.Find.Execute(ctx, dto.FindCustomersQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, "123.456.789-00", got.Document)
	assert.Equal(t, "(11)99999-0000", got.Phone)
	assert.Equal(t, "ACTIVE", got.Status)
}

func TestScenario_AddReturnsStoredTimestamps(t *testing.T) {
	ucs := composer.New(memory.NewCustomerRepo(), nil, nil).All()
	ctx := context.Background()

	added, err := ucs.Add.Execute(ctx, anaRequest())
	require.NoError(t, err)
	require.NotNil(t, added.CreatedAt)
	require.NotNil(t, added.UpdatedAt)

	got, err := ucs.Get.Execute(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, added.CreatedAt.Equal(*got.CreatedAt))
	assert.True(t, added.UpdatedAt.Equal(*got.UpdatedAt))
}

func TestScenario_DisableKeepsOtherFields(t *testing.T) {
	ucs := composer.New(memory.NewCustomerRepo(), nil, nil).All()
	ctx := context.Background()
	added, err := ucs.Add.Execute(ctx, anaRequest())
	require.NoError(t, err)

	require.NoError(t, ucs.Update.Execute(ctx, added.ID, dto.UpdateCustomerRequest{Status: strPtr("DISABLED")}))

	list, err := ucs.Find.Execute(ctx, dto.FindCustomersQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "DISABLED", list[0].Status)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "ana@x.com", list[0].Email)
	assert.Equal(t, "123.456.789-00", list[0].Document)
	assert.Equal(t, "(11)99999-0000", list[0].Phone)
}

func TestScenario_EveryStatusRoundTrips(t *testing.T) {
	ucs := composer.New(memory.NewCustomerRepo(), nil, nil).All()
	ctx := context.Background()

	for _, st := range entity.Statuses() {
		req := anaRequest()
		req.Status = string(st)
		_, err := ucs.Add.Execute(ctx, req)
		require.NoError(t, err, st)
	}

	list, err := ucs.Find.Execute(ctx, dto.FindCustomersQuery{})
	require.NoError(t, err)
	require.Len(t, list, len(entity.Statuses()))
	for i, st := range entity.Statuses() {
		assert.Equal(t, string(st), list[i].Status)
	}
}

func TestScenario_DeleteRemovesOnlyTarget(t *testing.T) {
	ucs := composer.New(memory.NewCustomerRepo(), nil, nil).All()
	ctx := context.Background()
	a, _ := ucs.Add.Execute(ctx, anaRequest())
	req := anaRequest()
	req.Name = "Bruno"
	b, _ := ucs.Add.Execute(ctx, req)

	require.NoError(t, ucs.Delete.Execute(ctx, a.ID))

	list, err := ucs.Find.Execute(ctx, dto.FindCustomersQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	err = ucs.Delete.Execute(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var re *domain.RepositoryError
	assert.True(t, errors.As(err, &re))
}
