// Package reactor runs the handlers that must finish before the next inbound
// frame is read. A reaction may change the connection state or the framing
// rules, so it runs on the read goroutine and the read loop waits for it.
//
// Handlers must be short. Anything that waits on the network is bounded by
// the context the connection passes in.
package reactor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/fed"
	"gfx.cafe/gfx/mcwire/lib/proto"
)

var (
	ErrDuplicateBinding = errors.New("duplicate reactor binding")
	ErrNotClientbound   = errors.New("reactors bind clientbound packets only")
	ErrPacketType       = errors.New("packet does not match binding")
)

// Target is the connection as seen from a handler.
type Target interface {
	State() proto.State
	Transition(to proto.State) error
	Pipeline() fed.Pipeline
	Send(ctx context.Context, packet proto.Packet) error
	Close() error
	// Disconnect closes the connection and records cause as the reason it
	// ended.
	Disconnect(cause error)

	Logger() *zap.Logger
	// Session returns the credential provider and session joiner, either of
	// which may be nil.
	Session() (auth.Provider, auth.Joiner)
}

type Handler func(ctx context.Context, target Target, packet proto.Packet) error

type Binding struct {
	Key     proto.Key
	Name    string
	Handler Handler
	// Forward also delivers the packet to the application once the handler
	// has returned.
	Forward bool
}

// Forwarded returns a copy of T that is also delivered to the application.
func (T Binding) Forwarded() Binding {
	T.Forward = true
	return T
}

// Bind builds a binding for the packet type T.
func Bind[T any, PT interface {
	proto.Packet
	*T
}](name string, fn func(ctx context.Context, target Target, packet PT) error) Binding {
	return Binding{
		Key:  PT(new(T)).Key(),
		Name: name,
		Handler: func(ctx context.Context, target Target, packet proto.Packet) error {
			p, ok := packet.(PT)
			if !ok {
				return fmt.Errorf("%w: got %T for %s", ErrPacketType, packet, name)
			}
			return fn(ctx, target, p)
		},
	}
}
