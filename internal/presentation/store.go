package presentation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// DeletePolicy define cuándo se quita una fila local respecto de la confirmación del backend.
type DeletePolicy int

const (
	// ConfirmThenApply quita la fila solo después de que el backend confirma.
	ConfirmThenApply DeletePolicy = iota
	// OptimisticWithRollback quita la fila de inmediato y la reinserta en su posición si el backend falla.
	OptimisticWithRollback
)

func (p DeletePolicy) String() string {
	switch p {
	case ConfirmThenApply:
		return "confirm-then-apply"
	case OptimisticWithRollback:
		return "optimistic-with-rollback"
	}
	return fmt.Sprintf("DeletePolicy(%d)", int(p))
}

// CustomerListStore estado local del listado. Sus métodos son la única vía de escritura.
type CustomerListStore struct {
	uc     UseCases
	policy DeletePolicy
	log    *logger.Logger

	mu        sync.Mutex
	customers []dto.CustomerResponse
	expanded  map[string]bool
}

// NewCustomerListStore crea un store vacío. log puede ser nil.
func NewCustomerListStore(uc UseCases, policy DeletePolicy, log *logger.Logger) *CustomerListStore {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerListStore{
		uc:       uc,
		policy:   policy,
		log:      log.Component("customer-list"),
		expanded: map[string]bool{},
	}
}

// Policy política de baja configurada.
func (s *CustomerListStore) Policy() DeletePolicy { return s.policy }

// Load reemplaza el estado local con un find-all, en el orden recibido.
func (s *CustomerListStore) Load(ctx context.Context) error {
	return s.Search(ctx, "")
}

// Search igual que Load pero filtrando en el backend por term.
func (s *CustomerListStore) Search(ctx context.Context, term string) error {
	list, err := s.uc.Find.Execute(ctx, dto.FindCustomersQuery{Search: term})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(make([]dto.CustomerResponse, 0, len(list)), list...)
	for id := range s.expanded {
		if s.indexOf(id) < 0 {
			delete(s.expanded, id)
		}
	}
	return nil
}

// Add da de alta en el backend y agrega al final el registro devuelto.
func (s *CustomerListStore) Add(ctx context.Context, in dto.AddCustomerRequest) (*dto.CustomerResponse, error) {
	out, err := s.uc.Add.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.customers = append(s.customers, *out)
	s.mu.Unlock()
	return out, nil
}

// Update envía primero al backend; si confirma, reemplaza la fila con el patch aplicado.
// Ante un error el estado local no cambia.
func (s *CustomerListStore) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) error {
	if err := s.uc.Update.Execute(ctx, id, in); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.customers[i] = ApplyUpdate(s.customers[i], in)
		s.expanded[id] = false
	}
	return nil
}

// Delete aplica la política configurada.
func (s *CustomerListStore) Delete(ctx context.Context, id string) error {
	if s.policy == OptimisticWithRollback {
		return s.deleteOptimistic(ctx, id)
	}
	if err := s.uc.Delete.Execute(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.removeAt(i)
	}
	delete(s.expanded, id)
	return nil
}

func (s *CustomerListStore) deleteOptimistic(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	var removed dto.CustomerResponse
	if idx >= 0 {
		removed = s.customers[idx]
		s.removeAt(idx)
	}
	s.mu.Unlock()

	err := s.uc.Delete.Execute(ctx, id)
	if err == nil {
		s.mu.Lock()
		delete(s.expanded, id)
		s.mu.Unlock()
		return nil
	}
	if idx < 0 {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		if idx > len(s.customers) {
			idx = len(s.customers)
		}
		s.customers = append(s.customers, dto.CustomerResponse{})
		copy(s.customers[idx+1:], s.customers[idx:])
		s.customers[idx] = removed
	}
	s.log.Warn().Err(err).Str("customer_id", id).Int("index", idx).Msg("baja rechazada, fila restaurada")
	return err
}

// Customers copia del estado local en orden de presentación.
func (s *CustomerListStore) Customers() []dto.CustomerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.CustomerResponse(nil), s.customers...)
}

// Len cantidad de filas locales.
func (s *CustomerListStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

// Summary pie del listado ("03 clients to show").
func (s *CustomerListStore) Summary() string {
	return fmt.Sprintf("%02d clients to show", s.Len())
}

// Toggle alterna el detalle desplegado de una fila y devuelve el nuevo estado.
func (s *CustomerListStore) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.expanded[id] = !s.expanded[id]
	return s.expanded[id]
}

// Expanded informa si la fila tiene el detalle desplegado.
func (s *CustomerListStore) Expanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

// indexOf requiere s.mu tomado.
func (s *CustomerListStore) indexOf(id string) int {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return i
		}
	}
	return -1
}

// removeAt requiere s.mu tomado.
func (s *CustomerListStore) removeAt(i int) {
	s.customers = append(s.customers[:i], s.customers[i+1:]...)
}

// ApplyUpdate devuelve c con los campos presentes en in. ID no cambia.
func ApplyUpdate(c dto.CustomerResponse, in dto.UpdateCustomerRequest) dto.CustomerResponse {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Document != nil {
		c.Document = strings.TrimSpace(*in.Document)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil {
		if st, ok := entity.ParseStatus(*in.Status); ok {
			c.Status = string(st)
		}
	}
	return c
}
