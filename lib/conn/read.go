package conn

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gfx.cafe/gfx/mcwire/lib/instrumentation/prom"
	"gfx.cafe/gfx/mcwire/lib/proto"
)

// Run is the read loop. It processes one frame at a time: read, decode, run
// the bound reaction to completion, queue the packet for the handler. The next
// frame is not read until the reaction has returned.
//
// Well framed packets with no descriptor are skipped. Any other read or decode
// error disconnects. Cancelling ctx closes the socket. Run returns the cause of
// the disconnect, or nil after a local Close, once every queued packet has
// been delivered.
func (T *Conn) Run(ctx context.Context) error {
	if !T.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	stop := context.AfterFunc(ctx, func() {
		T.closeWith(ctx.Err())
	})
	defer stop()

	var g errgroup.Group
	g.Go(func() error {
		for d := range T.queue {
			if T.options.Handler != nil {
				T.options.Handler(d.state, d.packet)
			}
		}
		return nil
	})
	defer func() {
		close(T.queue)
		_ = g.Wait()
	}()

	for {
		if err := T.next(ctx); err != nil {
			T.closeWith(err)
			return T.Err()
		}
	}
}

func (T *Conn) next(ctx context.Context) error {
	payload, err := T.codec.ReadFrame()
	if err != nil {
		return err
	}

	state := T.State()
	labels := prom.StateLabels{State: state.String()}
	prom.Conn.FramesIn(labels).Inc()
	prom.Conn.BytesIn(labels).Add(float64(len(payload)))

	packet, err := T.options.Registry.DecodeFrame(state, proto.Clientbound, payload)
	if err != nil {
		if errors.Is(err, proto.ErrUnknownPacket) {
			prom.Conn.Unknown(labels).Inc()
			T.log.Debug("skipping unknown packet", zap.Stringer("state", state), zap.Error(err))
			return nil
		}
		prom.Conn.DecodeError(labels).Inc()
		return err
	}

	reactCtx, cancel := context.WithTimeout(ctx, T.options.ReactorTimeout)
	outcome, err := T.dispatcher.Dispatch(reactCtx, T, state, packet)
	cancel()
	if err != nil {
		return err
	}

	if outcome.Deliver() {
		T.deliver(state, packet)
	}
	return nil
}

func (T *Conn) deliver(state proto.State, packet proto.Packet) {
	if T.options.Handler == nil {
		return
	}
	d := delivery{state: state, packet: packet}

	// a reaction may already have closed the connection; its own packet is
	// still delivered when there is room
	select {
	case T.queue <- d:
		return
	default:
	}
	select {
	case T.queue <- d:
	case <-T.done:
		prom.Conn.Dropped(prom.StateLabels{State: state.String()}).Inc()
	}
}
