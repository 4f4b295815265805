package repository

import (
	"context"

	"github.com/jhoicas/Customers-api/internal/domain/entity"
)

//go:generate mockery --name=CustomerRepository --output=../../mocks --case=underscore

// CustomerRepository define el puerto de persistencia para Customer.
// Toda falla se devuelve como *domain.RepositoryError.
type CustomerRepository interface {
	// Add persiste el cliente y devuelve el ID asignado por el backend.
	Add(ctx context.Context, in entity.NewCustomer) (string, error)
	// FindAll devuelve los clientes en orden de alta.
	FindAll(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// Update aplica el patch; domain.ErrNotFound si el ID no existe.
	Update(ctx context.Context, id string, patch entity.CustomerPatch) error
	// Delete elimina el cliente; domain.ErrNotFound si el ID no existe.
	Delete(ctx context.Context, id string) error
}
