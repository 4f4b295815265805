package dto

import "time"

// AddCustomerRequest body para POST /api/customers.
type AddCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Document string `json:"document" validate:"omitempty,max=20"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Status   string `json:"status" validate:"required,oneof=ACTIVE INACTIVE WAITING_FOR_ACTIVATION DISABLED"`
}

// UpdateCustomerRequest body para PUT/PATCH /api/customers/:id. Campos ausentes no se tocan.
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Document *string `json:"document,omitempty" validate:"omitempty,max=20"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE WAITING_FOR_ACTIVATION DISABLED"`
}

// FindCustomersQuery query string de GET /api/customers.
type FindCustomersQuery struct {
	Search string `query:"search"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Document  string     `json:"document"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CustomerListResponse respuesta de GET /api/customers.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
}
