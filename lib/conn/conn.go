// Package conn is the client side of a protocol connection: it owns the
// socket, the protocol state and the framing pipeline, runs the read loop and
// serialises sends.
package conn

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/fed"
	"gfx.cafe/gfx/mcwire/lib/instrumentation/prom"
	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/reactor"
	"gfx.cafe/gfx/mcwire/lib/util/decorator"
	"gfx.cafe/gfx/mcwire/lib/util/fsm"
)

type Status int32

const (
	Connected Status = iota
	Disconnected
)

func (T Status) String() string {
	switch T {
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	default:
		return fmt.Sprintf("Status(%d)", int32(T))
	}
}

type delivery struct {
	state  proto.State
	packet proto.Packet
}

type Conn struct {
	noCopy decorator.NoCopy

	options    Options
	log        *zap.Logger
	codec      *fed.Codec
	dispatcher *reactor.Dispatcher
	remote     string

	machine fsm.Machine[proto.State]
	state   atomic.Int32
	status  atomic.Int32

	// serialises encode, write and any transition the write causes
	sendMu sync.Mutex

	queue   chan delivery
	running atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
	err       error
}

// Dial connects to addr ("host:port") and returns a connection in the
// Handshake state. The read loop is not started.
func Dial(ctx context.Context, addr string, options Options) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if options.ServerAddress == "" {
		host, port, err := net.SplitHostPort(addr)
		if err == nil {
			options.ServerAddress = host
			if p, err := strconv.ParseUint(port, 10, 16); err == nil {
				options.ServerPort = uint16(p)
			}
		}
	}
	return New(nc, options), nil
}

// New wraps an established connection. The connection starts in the
// Handshake state.
func New(nc net.Conn, options Options) *Conn {
	options = options.withDefaults()

	c := &Conn{
		options:    options,
		codec:      fed.NewCodec(nc),
		dispatcher: reactor.NewDispatcher(options.Reactors, options.Tracer),
		remote:     nc.RemoteAddr().String(),
		queue:      make(chan delivery, options.QueueSize),
		done:       make(chan struct{}),
	}
	c.log = options.Logger.With(zap.String("remote", c.remote))

	c.machine.AddStateTransitionRules(proto.Handshake, proto.Status, proto.Login)
	c.machine.AddStateTransitionRules(proto.Login, proto.Play)
	c.machine.AddStateTransitionRules(proto.Status)
	c.machine.AddStateTransitionRules(proto.Play)
	if err := c.machine.StateTransition(proto.Handshake); err != nil {
		panic(err)
	}
	c.machine.SetStateTransitionCallback(c)
	c.state.Store(int32(proto.Handshake))

	prom.Conn.Open(prom.RemoteLabels{Remote: c.remote}).Inc()
	return c
}

// State is the current protocol state. Packet legality for Send depends on
// it.
func (T *Conn) State() proto.State {
	return proto.State(T.state.Load())
}

func (T *Conn) Status() Status {
	return Status(T.status.Load())
}

// Transition moves to state to. Only Handshake to Status or Login, and Login
// to Play, are allowed.
func (T *Conn) Transition(to proto.State) error {
	if err := T.machine.StateTransition(to); err != nil {
		return fmt.Errorf("%w: %s to %s: %w", ErrIllegalTransition, T.State(), to, err)
	}
	return nil
}

func (T *Conn) StateTransitionCallback(from, to proto.State) {
	T.state.Store(int32(to))
	prom.Conn.Transition(prom.TransitionLabels{From: from.String(), To: to.String()}).Inc()
	T.log.Info("state changed", zap.Stringer("from", from), zap.Stringer("to", to))
}

// Pipeline exposes the framing toggles. Toggling inbound rules is only sound
// from a reaction.
func (T *Conn) Pipeline() fed.Pipeline {
	return pipeline{codec: T.codec, log: T.log}
}

func (T *Conn) Logger() *zap.Logger {
	return T.log
}

func (T *Conn) Session() (auth.Provider, auth.Joiner) {
	return T.options.Auth, T.options.Joiner
}

func (T *Conn) LocalAddr() net.Addr {
	return T.codec.LocalAddr()
}

func (T *Conn) RemoteAddr() net.Addr {
	return T.codec.RemoteAddr()
}

// Close closes the socket. The read loop stops and Err stays nil.
func (T *Conn) Close() error {
	T.closeWith(nil)
	return nil
}

// Disconnect closes the socket with cause as the connection's Err.
func (T *Conn) Disconnect(cause error) {
	T.closeWith(cause)
}

// Done is closed once the connection is disconnected.
func (T *Conn) Done() <-chan struct{} {
	return T.done
}

// Err returns what ended the connection. It is nil while connected and after
// a local Close. A server kick is a reactors.ErrKicked carrying the reason.
func (T *Conn) Err() error {
	select {
	case <-T.done:
		return T.err
	default:
		return nil
	}
}

func (T *Conn) closeWith(cause error) {
	T.closeOnce.Do(func() {
		T.err = cause
		T.status.Store(int32(Disconnected))
		close(T.done)

		if err := T.codec.Close(); err != nil {
			T.log.Debug("closing socket", zap.Error(err))
		}
		prom.Conn.Open(prom.RemoteLabels{Remote: T.remote}).Dec()

		if cause != nil {
			T.log.Warn("disconnected", zap.Stringer("state", T.State()), zap.Error(cause))
		} else {
			T.log.Info("closed", zap.Stringer("state", T.State()))
		}
	})
}

// pipeline counts toggles on their way to the codec.
type pipeline struct {
	codec *fed.Codec
	log   *zap.Logger
}

func (T pipeline) EnableCompression(threshold int) error {
	if err := T.codec.EnableCompression(threshold); err != nil {
		return err
	}
	prom.Pipeline.Enabled(prom.PipelineLabels{Stage: "compression"}).Inc()
	T.log.Debug("compression enabled", zap.Int("threshold", threshold))
	return nil
}

func (T pipeline) EnableEncryption(secret []byte) error {
	if err := T.codec.EnableEncryption(secret); err != nil {
		return err
	}
	prom.Pipeline.Enabled(prom.PipelineLabels{Stage: "encryption"}).Inc()
	T.log.Debug("encryption enabled")
	return nil
}

var _ reactor.Target = (*Conn)(nil)
var _ fsm.CallbackHandler[proto.State] = (*Conn)(nil)
