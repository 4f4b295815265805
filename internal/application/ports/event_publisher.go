package ports

import (
	"context"
	"time"
)

// Tipos de evento de cliente.
const (
	CustomerCreated = "created"
	CustomerUpdated = "updated"
	CustomerDeleted = "deleted"
)

// CustomerEvent notificación emitida tras una mutación confirmada por el repositorio.
type CustomerEvent struct {
	Type       string            `json:"type"`
	CustomerID string            `json:"customer_id"`
	Fields     map[string]string `json:"fields,omitempty"` // valores nuevos (alta) o campos cambiados (actualización)
	OccurredAt time.Time         `json:"occurred_at"`
}

//go:generate mockery --name=EventPublisher --output=../../mocks --case=underscore

// EventPublisher puerto de salida para eventos de clientes (NATS, no-op).
// Los casos de uso registran el error de Publish pero nunca lo propagan.
type EventPublisher interface {
	Publish(ctx context.Context, event CustomerEvent) error
}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, CustomerEvent) error { return nil }
