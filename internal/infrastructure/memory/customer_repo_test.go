package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
)

func ana() entity.NewCustomer {
	return entity.NewCustomer{
		Name:     "Ana",
		Email:    "ana@x.com",
		Document: "123.456.789-00",
		Phone:    "(11)99999-0000",
		Status:   entity.StatusActive,
	}
}

func TestCustomerRepo_AddThenFindAll(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()

	id, err := r.Add(ctx, ana())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	list, err := r.FindAll(ctx, entity.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "123.456.789-00", list[0].Document)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestCustomerRepo_AddKeepsGivenCreatedAt(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	in := ana()
	in.CreatedAt = at
	id, err := r.Add(ctx, in)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.True(t, at.Equal(got.UpdatedAt))
}

func TestCustomerRepo_KeepsInsertionOrder(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	for _, n := range []string{"c", "a", "b"} {
		_, err := r.Add(ctx, entity.NewCustomer{Name: n, Status: entity.StatusActive})
		require.NoError(t, err)
	}
	list, err := r.FindAll(ctx, entity.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestCustomerRepo_SearchIgnoresAccentsAndCase(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	_, _ = r.Add(ctx, entity.NewCustomer{Name: "José Álvarez", Status: entity.StatusActive})
	_, _ = r.Add(ctx, entity.NewCustomer{Name: "Maria", Email: "maria@x.com", Status: entity.StatusActive})
	_, _ = r.Add(ctx, entity.NewCustomer{Name: "Pedro", Document: "111.222.333-44", Status: entity.StatusActive})

	list, err := r.FindAll(ctx, entity.CustomerFilter{Search: "jose alv"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "José Álvarez", list[0].Name)

	list, err = r.FindAll(ctx, entity.CustomerFilter{Search: "MARIA@"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = r.FindAll(ctx, entity.CustomerFilter{Search: "222.333"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pedro", list[0].Name)
}

func TestCustomerRepo_UpdateOnlySuppliedFields(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	id, _ := r.Add(ctx, ana())

	disabled := entity.StatusDisabled
	require.NoError(t, r.Update(ctx, id, entity.CustomerPatch{Status: &disabled}))

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDisabled, got.Status)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, "(11)99999-0000", got.Phone)
}

func TestCustomerRepo_UnknownIDIsNotFound(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	name := "x"

	_, err := r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Update(ctx, "missing", entity.CustomerPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Delete(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var re *domain.RepositoryError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "delete", re.Op)
}

func TestCustomerRepo_DeleteRemovesExactlyOne(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	a, _ := r.Add(ctx, entity.NewCustomer{Name: "a", Status: entity.StatusActive})
	b, _ := r.Add(ctx, entity.NewCustomer{Name: "b", Status: entity.StatusActive})
	c, _ := r.Add(ctx, entity.NewCustomer{Name: "c", Status: entity.StatusActive})

	require.NoError(t, r.Delete(ctx, b))

	list, err := r.FindAll(ctx, entity.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, c, list[1].ID)
}

func TestCustomerRepo_ReturnsCopies(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	id, _ := r.Add(ctx, ana())

	got, _ := r.GetByID(ctx, id)
	got.Name = "changed"

	again, _ := r.GetByID(ctx, id)
	assert.Equal(t, "Ana", again.Name)
}

func TestCustomerRepo_CanceledContext(t *testing.T) {
	r := NewCustomerRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Add(ctx, ana())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomerRepo_ConcurrentAdds(t *testing.T) {
	r := NewCustomerRepo()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Add(ctx, ana())
		}()
	}
	wg.Wait()
	list, err := r.FindAll(ctx, entity.CustomerFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestUserRepo_CreateAndLookup(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	u := &entity.User{ID: "u1", Email: "Op@x.com", Name: "Op", Role: entity.RoleOperator}
	require.NoError(t, r.Create(ctx, u))
	assert.ErrorIs(t, r.Create(ctx, &entity.User{ID: "u2", Email: "op@x.com"}), domain.ErrEmailAlreadyExists)

	got, err := r.GetByEmail(ctx, "op@X.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	missing, err := r.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
