package entity

import (
	"strings"
	"time"
)

// CustomerStatus estado de un cliente. El valor literal es el que viaja por la API.
type CustomerStatus string

// Estados válidos de Customer.
const (
	StatusActive               CustomerStatus = "ACTIVE"
	StatusInactive             CustomerStatus = "INACTIVE"
	StatusWaitingForActivation CustomerStatus = "WAITING_FOR_ACTIVATION"
	StatusDisabled             CustomerStatus = "DISABLED"
)

// Statuses devuelve todos los estados en orden de presentación.
func Statuses() []CustomerStatus {
	return []CustomerStatus{StatusActive, StatusInactive, StatusWaitingForActivation, StatusDisabled}
}

// Valid informa si s es uno de los cuatro estados conocidos.
func (s CustomerStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusWaitingForActivation, StatusDisabled:
		return true
	}
	return false
}

// ParseStatus acepta el literal sin distinguir mayúsculas.
func ParseStatus(s string) (CustomerStatus, bool) {
	st := CustomerStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

// Customer representa un cliente. ID lo asigna el backend y no cambia.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Document  string // CPF con máscara 999.999.999-99, guardado tal cual
	Phone     string // (99)99999-9999, guardado tal cual
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer datos de alta; el repositorio asigna el ID.
type NewCustomer struct {
	Name     string
	Email    string
	Document string
	Phone    string
	Status   CustomerStatus
	// CreatedAt cero = el repositorio usa su propio reloj. Se guarda también como UpdatedAt.
	CreatedAt time.Time
}

// CustomerPatch actualización parcial: nil conserva el valor previo.
type CustomerPatch struct {
	Name     *string
	Email    *string
	Document *string
	Phone    *string
	Status   *CustomerStatus
}

// IsEmpty indica que el patch no cambia ningún campo.
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Document == nil && p.Phone == nil && p.Status == nil
}

// Apply devuelve una copia de c con los campos del patch aplicados. ID no se toca.
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Document != nil {
		c.Document = *p.Document
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	return c
}

// CustomerFilter filtro de búsqueda; vacío = todos los clientes.
type CustomerFilter struct {
	Search string
}
