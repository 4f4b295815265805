// Package customer contiene los casos de uso de clientes: uno por operación,
// cada uno con un único Execute que hace exactamente una llamada al repositorio.
package customer

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

const tracerName = "github.com/jhoicas/Customers-api/internal/application/customer"

// deps dependencias compartidas por los casos de uso.
type deps struct {
	events ports.EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

func newDeps(events ports.EventPublisher, log *logger.Logger) deps {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return deps{events: events, log: log, now: time.Now}
}

func (d deps) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// endSpan marca el span con el error (si hay) y lo cierra.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// publish emite el evento; un fallo del broker solo se registra.
func (d deps) publish(ctx context.Context, typ, id string, fields map[string]string) {
	ev := ports.CustomerEvent{Type: typ, CustomerID: id, Fields: fields, OccurredAt: d.now().UTC()}
	if err := d.events.Publish(ctx, ev); err != nil {
		d.log.Warn().Err(err).Str("customer_id", id).Str("event", typ).Msg("no se pudo publicar el evento")
	}
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		v := &domain.ValidationError{}
		v.Add("id", "requerido")
		return v
	}
	return nil
}

func validateMasked(v *domain.ValidationError, field, value string) {
	if !entity.IsMasked(value) {
		v.Add(field, "solo dígitos y . - ( )")
	}
}

// ToResponse convierte la entidad en DTO de salida.
func ToResponse(c *entity.Customer) dto.CustomerResponse {
	out := dto.CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Document: c.Document,
		Phone:    c.Phone,
		Status:   string(c.Status),
	}
	if !c.CreatedAt.IsZero() {
		t := c.CreatedAt
		out.CreatedAt = &t
	}
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
