package packets

import (
	"fmt"

	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

// NextState is the intent declared by the Handshake packet.
type NextState int32

const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

// State returns the connection state the intent leads to.
func (T NextState) State() (proto.State, error) {
	switch T {
	case NextStateStatus:
		return proto.Status, nil
	case NextStateLogin:
		return proto.Login, nil
	default:
		return 0, fmt.Errorf("%w: next state %d", ErrInvalidFormat, int32(T))
	}
}

type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (*Handshake) Key() proto.Key {
	return key(proto.Handshake, proto.Serverbound, TypeHandshake)
}

func (T *Handshake) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.ProtocolVersion, err = decoder.VarInt(); err != nil {
		return
	}
	if T.ServerAddress, err = decoder.StringMax(255); err != nil {
		return
	}
	if T.ServerPort, err = decoder.Uint16(); err != nil {
		return
	}
	var next int32
	next, err = decoder.VarInt()
	T.NextState = NextState(next)
	return
}

func (T *Handshake) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.ProtocolVersion)
	encoder.String(T.ServerAddress)
	encoder.Uint16(T.ServerPort)
	encoder.VarInt(int32(T.NextState))
	return nil
}

// Transition moves the connection to the declared next state once the
// handshake has been written.
func (T *Handshake) Transition() (proto.State, error) {
	return T.NextState.State()
}

var _ proto.Transitioner = (*Handshake)(nil)
