package conn

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/fed"
	"gfx.cafe/gfx/mcwire/lib/instrumentation/prom"
	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

// Send encodes packet for the current state and writes it as one frame. It is
// safe to call from any goroutine, including reactions.
//
// A packet that is not registered as serverbound in the current state fails
// with a *proto.EncodeError and nothing is written. Sending a packet that
// implements proto.Transitioner performs its transition once written.
func (T *Conn) Send(ctx context.Context, packet proto.Packet) error {
	if T.Status() == Disconnected {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	T.sendMu.Lock()
	defer T.sendMu.Unlock()

	state := T.State()

	var next proto.State
	transitioner, transitions := packet.(proto.Transitioner)
	if transitions {
		var err error
		if next, err = transitioner.Transition(); err != nil {
			return &proto.EncodeError{Key: packet.Key(), State: state, Err: err}
		}
	}

	var encoder wire.Encoder
	if err := T.options.Registry.Encode(state, proto.Serverbound, packet, &encoder); err != nil {
		return err
	}
	payload := encoder.Bytes()

	if err := T.codec.WriteFrame(payload); err != nil {
		if errors.Is(err, fed.ErrClosed) {
			return ErrNotConnected
		}
		if errors.Is(err, fed.ErrFrameTooLarge) {
			return &proto.EncodeError{Key: packet.Key(), State: state, Err: err}
		}
		T.closeWith(err)
		return err
	}

	labels := prom.StateLabels{State: state.String()}
	prom.Conn.FramesOut(labels).Inc()
	prom.Conn.BytesOut(labels).Add(float64(len(payload)))
	if ce := T.log.Check(zap.DebugLevel, "sent"); ce != nil {
		ce.Write(zap.Stringer("packet", packet.Key()), zap.Int("bytes", len(payload)))
	}

	if transitions {
		return T.Transition(next)
	}
	return nil
}
