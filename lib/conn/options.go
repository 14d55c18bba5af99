package conn

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/proto"
	packets "gfx.cafe/gfx/mcwire/lib/proto/packets/v762"
	"gfx.cafe/gfx/mcwire/lib/reactor"
	"gfx.cafe/gfx/mcwire/lib/reactor/reactors"
)

const (
	DefaultQueueSize      = 256
	DefaultReactorTimeout = 10 * time.Second
)

// Handler receives every packet that no reaction consumed, in arrival order,
// together with the state it was decoded in. It runs on a single delivery
// goroutine, never on the read loop.
type Handler func(state proto.State, packet proto.Packet)

type Options struct {
	// Registry decodes and encodes packets. Defaults to the protocol 762
	// catalog.
	Registry *proto.Registry
	// Reactors defaults to reactors.Default().
	Reactors *reactor.Table
	// Tracer for reaction spans. Defaults to the global provider.
	Tracer trace.Tracer

	Handler Handler
	// QueueSize bounds the packets waiting for Handler. When full, the read
	// loop waits.
	QueueSize int
	// ReactorTimeout bounds each reaction, including any session join.
	ReactorTimeout time.Duration

	// Auth and Joiner are used for online mode logins. Both may be nil for
	// offline servers.
	Auth   auth.Provider
	Joiner auth.Joiner

	// ServerAddress and ServerPort go into the handshake. Dial fills them
	// from its address when empty.
	ServerAddress string
	ServerPort    uint16

	Logger *zap.Logger
}

var defaultRegistry = sync.OnceValue(func() *proto.Registry {
	r, err := packets.NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
})

func (T Options) withDefaults() Options {
	if T.Registry == nil {
		T.Registry = defaultRegistry()
	}
	if T.Reactors == nil {
		T.Reactors = reactors.Default()
	}
	if T.QueueSize <= 0 {
		T.QueueSize = DefaultQueueSize
	}
	if T.ReactorTimeout <= 0 {
		T.ReactorTimeout = DefaultReactorTimeout
	}
	if T.Logger == nil {
		T.Logger = zap.NewNop()
	}
	return T
}
