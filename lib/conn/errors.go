package conn

import "errors"

var (
	ErrNotConnected      = errors.New("not connected")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrAlreadyRunning    = errors.New("read loop already running")
)
