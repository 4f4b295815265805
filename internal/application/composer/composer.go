// Package composer conecta una implementación concreta de CustomerRepository
// con cada caso de uso de clientes.
package composer

import (
	"github.com/jhoicas/Customers-api/internal/application/customer"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// Composer fábrica de casos de uso sobre un repositorio concreto.
type Composer struct {
	repo   repository.CustomerRepository
	events ports.EventPublisher
	log    *logger.Logger
}

// New construye el composer. events y log pueden ser nil (no-op).
func New(repo repository.CustomerRepository, events ports.EventPublisher, log *logger.Logger) *Composer {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Composer{repo: repo, events: events, log: log.Component("customers")}
}

// UseCases agrupa todos los casos de uso compuestos.
type UseCases struct {
	Add    *customer.AddCustomerUseCase
	Find   *customer.FindCustomersUseCase
	Get    *customer.GetCustomerUseCase
	Update *customer.UpdateCustomerUseCase
	Delete *customer.DeleteCustomerUseCase
}

// MakeAddCustomerUseCase compone el alta.
func (c *Composer) MakeAddCustomerUseCase() *customer.AddCustomerUseCase {
	return customer.NewAddCustomerUseCase(c.repo, c.events, c.log)
}

// MakeFindCustomersUseCase compone el listado.
func (c *Composer) MakeFindCustomersUseCase() *customer.FindCustomersUseCase {
	return customer.NewFindCustomersUseCase(c.repo, c.log)
}

// MakeGetCustomerUseCase compone la consulta por ID.
func (c *Composer) MakeGetCustomerUseCase() *customer.GetCustomerUseCase {
	return customer.NewGetCustomerUseCase(c.repo, c.log)
}

// MakeUpdateCustomerUseCase compone la actualización.
func (c *Composer) MakeUpdateCustomerUseCase() *customer.UpdateCustomerUseCase {
	return customer.NewUpdateCustomerUseCase(c.repo, c.events, c.log)
}

// MakeDeleteCustomerUseCase compone la baja.
func (c *Composer) MakeDeleteCustomerUseCase() *customer.DeleteCustomerUseCase {
	return customer.NewDeleteCustomerUseCase(c.repo, c.events, c.log)
}

// All compone los cinco casos de uso.
func (c *Composer) All() UseCases {
	return UseCases{
		Add:    c.MakeAddCustomerUseCase(),
		Find:   c.MakeFindCustomersUseCase(),
		Get:    c.MakeGetCustomerUseCase(),
		Update: c.MakeUpdateCustomerUseCase(),
		Delete: c.MakeDeleteCustomerUseCase(),
	}
}
