package reactor

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gfx.cafe/gfx/mcwire/lib/instrumentation/prom"
	"gfx.cafe/gfx/mcwire/lib/proto"
)

type Outcome int

const (
	// Unbound means no reaction exists; the packet goes to the application.
	Unbound Outcome = iota
	// Applied means the reaction ran and consumed the packet.
	Applied
	// Forwarded means the reaction ran and the packet goes to the
	// application as well.
	Forwarded
)

// Deliver reports whether the packet should still reach the application.
func (T Outcome) Deliver() bool {
	return T != Applied
}

func (T Outcome) String() string {
	switch T {
	case Unbound:
		return "Unbound"
	case Applied:
		return "Applied"
	case Forwarded:
		return "Forwarded"
	default:
		return fmt.Sprintf("Outcome(%d)", int(T))
	}
}

type Dispatcher struct {
	table  *Table
	tracer trace.Tracer
}

// NewDispatcher returns a dispatcher over table. A nil tracer uses the global
// provider.
func NewDispatcher(table *Table, tracer trace.Tracer) *Dispatcher {
	if tracer == nil {
		tracer = otel.Tracer(
			"mcwire",
			trace.WithInstrumentationAttributes(
				attribute.String("component", "gfx.cafe/gfx/mcwire/lib/reactor")))
	}
	return &Dispatcher{
		table:  table,
		tracer: tracer,
	}
}

func (T *Dispatcher) Table() *Table {
	return T.table
}

// Dispatch runs the reaction bound to packet in state, if any, and returns once
// it has completed. Any state or pipeline change made by the handler is in
// effect when Dispatch returns.
func (T *Dispatcher) Dispatch(ctx context.Context, target Target, state proto.State, packet proto.Packet) (Outcome, error) {
	key := packet.Key()
	if key.State != state || key.Direction != proto.Clientbound {
		return Unbound, nil
	}
	b, ok := T.table.Lookup(state, key.ID)
	if !ok {
		return Unbound, nil
	}

	ctx, span := T.tracer.Start(ctx, "reactor."+b.Name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("state", state.String()),
			attribute.Int("packet_id", int(key.ID))))
	defer span.End()

	labels := prom.ReactorLabels{
		State:  state.String(),
		Packet: b.Name,
	}
	start := time.Now()
	err := b.Handler(ctx, target, packet)
	prom.Reactor.Duration(labels).Observe(float64(time.Since(start)) / float64(time.Millisecond))

	if err != nil {
		prom.Reactor.Errors(labels).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Applied, fmt.Errorf("reactor %s: %w", b.Name, err)
	}

	if b.Forward {
		return Forwarded, nil
	}
	return Applied, nil
}
