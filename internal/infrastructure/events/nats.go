// Package events publica los eventos de clientes en NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// conn parte de *nats.Conn que usa el publisher.
type conn interface {
	Publish(subject string, data []byte) error
}

// message cuerpo JSON publicado en <prefix>.<type>.
type message struct {
	Type       string            `json:"type"`
	CustomerID string            `json:"customer_id"`
	Fields     map[string]string `json:"fields,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NATSPublisher implementa ports.EventPublisher.
type NATSPublisher struct {
	conn   conn
	prefix string
	close  func()
}

// Connect abre la conexión a NATS. prefix vacío usa "customers".
func Connect(url, prefix string, log *logger.Logger) (*NATSPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	l := log.Component("nats")
	nc, err := nats.Connect(url,
		nats.Name("customers-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warn().Err(err).Msg("desconectado de NATS")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			l.Info().Str("url", c.ConnectedUrl()).Msg("reconectado a NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	l.Info().Str("url", url).Msg("conectado a NATS")
	p := newPublisher(nc, prefix)
	p.close = nc.Close
	return p, nil
}

func newPublisher(c conn, prefix string) *NATSPublisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = "customers"
	}
	return &NATSPublisher{conn: c, prefix: prefix}
}

// Subject devuelve el subject de un tipo de evento (customers.created, ...).
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

// Publish serializa el evento y lo publica.
func (p *NATSPublisher) Publish(ctx context.Context, ev ports.CustomerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(message{
		Type:       ev.Type,
		CustomerID: ev.CustomerID,
		Fields:     ev.Fields,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(ev.Type), data); err != nil {
		return fmt.Errorf("publish %s: %w", p.Subject(ev.Type), err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (p *NATSPublisher) Close() {
	if p.close != nil {
		p.close()
	}
}
