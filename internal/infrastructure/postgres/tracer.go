package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jhoicas/Customers-api/internal/infrastructure/postgres"

var _ pgx.QueryTracer = (*QueryTracer)(nil)

// QueryTracer abre un span de cliente por cada consulta pgx.
type QueryTracer struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// NewQueryTracer usa el TracerProvider global.
func NewQueryTracer(dbName string) *QueryTracer {
	return &QueryTracer{
		tracer: otel.Tracer(tracerName),
		attrs: []attribute.KeyValue{
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbName),
		},
	}
}

// TraceQueryStart implementa pgx.QueryTracer.
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op := operation(data.SQL)
	ctx, span := t.tracer.Start(ctx, "pg."+strings.ToLower(op), trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(t.attrs...)
	span.SetAttributes(
		attribute.String("db.operation", op),
		attribute.String("db.statement", strings.Join(strings.Fields(data.SQL), " ")),
		attribute.Int("db.args", len(data.Args)),
	)
	return ctx
}

// TraceQueryEnd implementa pgx.QueryTracer.
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	} else {
		span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	span.End()
}

// operation primera palabra de la sentencia en mayúsculas (SELECT, INSERT...).
func operation(sql string) string {
	f := strings.Fields(sql)
	if len(f) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(f[0])
}
