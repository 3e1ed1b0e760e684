package inventory

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jhoicas/ppf-inventory/internal/application/inventory"

func defaultTracer(t trace.Tracer) trace.Tracer {
	if t != nil {
		return t
	}
	return otel.Tracer(tracerName)
}

// endSpan marca el span con el error (si hay) y lo cierra.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// now con precisión de microsegundos: es lo que conserva PostgreSQL.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
