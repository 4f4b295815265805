// Package memory implementa los repositorios en memoria (modo desarrollo y pruebas).
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo guarda los clientes en un mapa con el orden de alta.
type CustomerRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Customer
	order []string
	now   func() time.Time
}

// NewCustomerRepo crea un repositorio vacío.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{
		byID: make(map[string]*entity.Customer),
		now:  time.Now,
	}
}

// Add asigna un UUID y guarda el cliente al final del orden.
func (r *CustomerRepo) Add(ctx context.Context, in entity.NewCustomer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewRepositoryError("add", err)
	}
	now := in.CreatedAt
	if now.IsZero() {
		now = r.now().UTC()
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Document:  in.Document,
		Phone:     in.Phone,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return c.ID, nil
}

// FindAll devuelve copias en orden de alta, filtradas por filter.Search.
func (r *CustomerRepo) FindAll(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewRepositoryError("find all", err)
	}
	term := filter.Term()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		if !matches(term, c.Name, c.Email, c.Document) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// GetByID devuelve una copia del cliente.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewRepositoryError("get", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.NewRepositoryError("get", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
	}
	cp := *c
	return &cp, nil
}

// Update aplica el patch sobre el cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, id string, patch entity.CustomerPatch) error {
	if err := ctx.Err(); err != nil {
		return domain.NewRepositoryError("update", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return domain.NewRepositoryError("update", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
	}
	updated := patch.Apply(*c)
	updated.UpdatedAt = r.now().UTC()
	r.byID[id] = &updated
	return nil
}

// Delete quita el cliente del mapa y del orden.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewRepositoryError("delete", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.NewRepositoryError("delete", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
