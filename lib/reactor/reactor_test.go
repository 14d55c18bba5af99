package reactor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/reactor"
	"gfx.cafe/gfx/mcwire/lib/reactor/reactortest"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

type threshold struct {
	Value int32
}

func (*threshold) Key() proto.Key {
	return proto.Key{State: proto.Login, Direction: proto.Clientbound, ID: 0x03}
}

func (T *threshold) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.Value)
	return nil
}

type reply struct{}

func (*reply) Key() proto.Key {
	return proto.Key{State: proto.Login, Direction: proto.Serverbound, ID: 0x02}
}

func (*reply) WriteTo(*wire.Encoder) error { return nil }

func enableCompression(_ context.Context, target reactor.Target, p *threshold) error {
	return target.Pipeline().EnableCompression(int(p.Value))
}

func newDispatcher(t *testing.T, table *reactor.Table) (*reactor.Dispatcher, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return reactor.NewDispatcher(table, tp.Tracer("test")), recorder
}

func TestTable(t *testing.T) {
	b := reactor.Bind("Threshold", enableCompression)
	require.Equal(t, (&threshold{}).Key(), b.Key)
	require.False(t, b.Forward)
	require.True(t, b.Forwarded().Forward)

	_, err := reactor.NewTable(b, b)
	require.ErrorIs(t, err, reactor.ErrDuplicateBinding)

	_, err = reactor.NewTable(reactor.Bind("Reply", func(context.Context, reactor.Target, *reply) error { return nil }))
	require.ErrorIs(t, err, reactor.ErrNotClientbound)

	table := reactor.MustNewTable(b)
	require.Equal(t, 1, table.Len())

	got, ok := table.Lookup(proto.Login, 0x03)
	require.True(t, ok)
	require.Equal(t, "Threshold", got.Name)

	_, ok = table.Lookup(proto.Play, 0x03)
	require.False(t, ok)

	overridden, err := table.Override(b.Forwarded())
	require.NoError(t, err)
	got, _ = overridden.Lookup(proto.Login, 0x03)
	require.True(t, got.Forward)
	got, _ = table.Lookup(proto.Login, 0x03)
	require.False(t, got.Forward)

	require.Equal(t, 0, table.Without(b.Key).Len())
	require.Equal(t, 1, table.Len())
}

func TestDispatch(t *testing.T) {
	table := reactor.MustNewTable(reactor.Bind("Threshold", enableCompression))
	d, recorder := newDispatcher(t, table)
	target := reactortest.NewTarget(proto.Login)

	outcome, err := d.Dispatch(context.Background(), target, proto.Login, &threshold{Value: 256})
	require.NoError(t, err)
	require.Equal(t, reactor.Applied, outcome)
	require.False(t, outcome.Deliver())
	require.Equal(t, 256, target.Compression())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "reactor.Threshold", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)

	// wrong state: no binding applies
	outcome, err = d.Dispatch(context.Background(), target, proto.Play, &threshold{Value: 1})
	require.NoError(t, err)
	require.Equal(t, reactor.Unbound, outcome)
	require.True(t, outcome.Deliver())
}

func TestDispatch_Forwarded(t *testing.T) {
	var ran bool
	table := reactor.MustNewTable(reactor.Bind("Threshold", func(context.Context, reactor.Target, *threshold) error {
		ran = true
		return nil
	}).Forwarded())
	d, _ := newDispatcher(t, table)

	outcome, err := d.Dispatch(context.Background(), reactortest.NewTarget(proto.Login), proto.Login, &threshold{})
	require.NoError(t, err)
	require.True(t, ran)
	require.Equal(t, reactor.Forwarded, outcome)
	require.True(t, outcome.Deliver())
}

func TestDispatch_Error(t *testing.T) {
	boom := errors.New("boom")
	table := reactor.MustNewTable(reactor.Bind("Threshold", func(context.Context, reactor.Target, *threshold) error {
		return boom
	}))
	d, recorder := newDispatcher(t, table)

	_, err := d.Dispatch(context.Background(), reactortest.NewTarget(proto.Login), proto.Login, &threshold{})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "boom", spans[0].Status().Description)
}

func TestDispatch_NilTable(t *testing.T) {
	d := reactor.NewDispatcher(nil, nil)
	outcome, err := d.Dispatch(context.Background(), reactortest.NewTarget(proto.Login), proto.Login, &threshold{})
	require.NoError(t, err)
	require.Equal(t, reactor.Unbound, outcome)
}
