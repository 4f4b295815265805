// Package presentation mantiene el estado local de la vista de listado de clientes
// y lo reconcilia con el backend a través de los casos de uso.
package presentation

import (
	"context"

	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/dto"
)

// AddCustomer alta de cliente.
type AddCustomer interface {
	Execute(ctx context.Context, in dto.AddCustomerRequest) (*dto.CustomerResponse, error)
}

// FindCustomers listado de clientes.
type FindCustomers interface {
	Execute(ctx context.Context, q dto.FindCustomersQuery) ([]dto.CustomerResponse, error)
}

// UpdateCustomer actualización parcial.
type UpdateCustomer interface {
	Execute(ctx context.Context, id string, in dto.UpdateCustomerRequest) error
}

// DeleteCustomer baja de cliente.
type DeleteCustomer interface {
	Execute(ctx context.Context, id string) error
}

// UseCases casos de uso que consume el store.
type UseCases struct {
	Add    AddCustomer
	Find   FindCustomers
	Update UpdateCustomer
	Delete DeleteCustomer
}

// FromComposer toma los casos de uso ya compuestos sobre un repositorio.
func FromComposer(c *composer.Composer) UseCases {
	return UseCases{
		Add:    c.MakeAddCustomerUseCase(),
		Find:   c.MakeFindCustomersUseCase(),
		Update: c.MakeUpdateCustomerUseCase(),
		Delete: c.MakeDeleteCustomerUseCase(),
	}
}
