package customer

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// AddCustomerUseCase da de alta un cliente.
type AddCustomerUseCase struct {
	repo repository.CustomerRepository
	deps
}

// NewAddCustomerUseCase construye el caso de uso.
func NewAddCustomerUseCase(repo repository.CustomerRepository, events ports.EventPublisher, log *logger.Logger) *AddCustomerUseCase {
	return &AddCustomerUseCase{repo: repo, deps: newDeps(events, log)}
}

// Execute valida la entrada, persiste y devuelve el cliente con el ID asignado por el backend
// y los timestamps de alta.
func (uc *AddCustomerUseCase) Execute(ctx context.Context, in dto.AddCustomerRequest) (out *dto.CustomerResponse, err error) {
	ctx, span := uc.startSpan(ctx, "customer.Add")
	defer func() { endSpan(span, err) }()

	nc, err := validateAdd(in)
	if err != nil {
		return nil, err
	}
	// microsegundos: la precisión de timestamptz, así la respuesta coincide con lo leído después
	nc.CreatedAt = uc.now().UTC().Truncate(time.Microsecond)

	id, err := uc.repo.Add(ctx, nc)
	if err != nil {
		uc.log.Error().Err(err).Str("name", nc.Name).Msg("alta de cliente fallida")
		return nil, err
	}

	uc.log.Info().Str("customer_id", id).Str("status", string(nc.Status)).Msg("cliente creado")
	uc.publish(ctx, ports.CustomerCreated, id, map[string]string{
		"name":     nc.Name,
		"email":    nc.Email,
		"document": nc.Document,
		"phone":    nc.Phone,
		"status":   string(nc.Status),
	})

	resp := ToResponse(&entity.Customer{
		ID:        id,
		Name:      nc.Name,
		Email:     nc.Email,
		Document:  nc.Document,
		Phone:     nc.Phone,
		Status:    nc.Status,
		CreatedAt: nc.CreatedAt,
		UpdatedAt: nc.CreatedAt,
	})
	return &resp, nil
}

func validateAdd(in dto.AddCustomerRequest) (entity.NewCustomer, error) {
	v := &domain.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.Add("name", "requerido")
	}
	status, ok := entity.ParseStatus(in.Status)
	if !ok {
		v.Add("status", "debe ser ACTIVE, INACTIVE, WAITING_FOR_ACTIVATION o DISABLED")
	}
	validateMasked(v, "document", in.Document)
	validateMasked(v, "phone", in.Phone)
	if err := v.OrNil(); err != nil {
		return entity.NewCustomer{}, err
	}
	return entity.NewCustomer{
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		Document: in.Document,
		Phone:    in.Phone,
		Status:   status,
	}, nil
}
