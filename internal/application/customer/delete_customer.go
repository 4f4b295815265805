package customer

import (
	"context"

	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// DeleteCustomerUseCase elimina un cliente.
type DeleteCustomerUseCase struct {
	repo repository.CustomerRepository
	deps
}

// NewDeleteCustomerUseCase construye el caso de uso.
func NewDeleteCustomerUseCase(repo repository.CustomerRepository, events ports.EventPublisher, log *logger.Logger) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{repo: repo, deps: newDeps(events, log)}
}

// Execute elimina el cliente; domain.ErrNotFound (envuelto) si no existe.
func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, id string) (err error) {
	ctx, span := uc.startSpan(ctx, "customer.Delete")
	defer func() { endSpan(span, err) }()

	if err := requireID(id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error().Err(err).Str("customer_id", id).Msg("baja de cliente fallida")
		return err
	}
	uc.log.Info().Str("customer_id", id).Msg("cliente eliminado")
	uc.publish(ctx, ports.CustomerDeleted, id, nil)
	return nil
}
