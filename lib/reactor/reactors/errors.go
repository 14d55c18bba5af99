package reactors

import (
	"errors"
	"fmt"

	"gfx.cafe/gfx/mcwire/lib/proto"
)

var (
	ErrKicked = errors.New("disconnected by server")
)

// KickError is the cause a connection ends with when the server sends a
// disconnect packet. Reason is the server's chat JSON.
type KickError struct {
	State  proto.State
	Reason string
}

func (T *KickError) Error() string {
	return fmt.Sprintf("%v during %s: %s", ErrKicked, T.State, T.Reason)
}

func (T *KickError) Unwrap() error {
	return ErrKicked
}
