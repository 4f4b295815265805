package customer

import (
	"context"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// GetCustomerUseCase obtiene un cliente por ID.
type GetCustomerUseCase struct {
	repo repository.CustomerRepository
	deps
}

// NewGetCustomerUseCase construye el caso de uso.
func NewGetCustomerUseCase(repo repository.CustomerRepository, log *logger.Logger) *GetCustomerUseCase {
	return &GetCustomerUseCase{repo: repo, deps: newDeps(nil, log)}
}

// Execute devuelve domain.ErrNotFound (envuelto) si el cliente no existe.
func (uc *GetCustomerUseCase) Execute(ctx context.Context, id string) (out *dto.CustomerResponse, err error) {
	ctx, span := uc.startSpan(ctx, "customer.Get")
	defer func() { endSpan(span, err) }()

	if err := requireID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(c)
	return &resp, nil
}
