package proto

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPacket  = errors.New("unknown packet")
	ErrDecode         = errors.New("packet decode failed")
	ErrEncode         = errors.New("packet encode failed")
	ErrDuplicateKey   = errors.New("duplicate packet key")
	ErrWrongDirection = errors.New("packet is not legal in this direction")
)

// DecodeError reports a payload that did not match its descriptor.
type DecodeError struct {
	Key  Key
	Name string
	Err  error
}

func (T *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", T.Name, T.Key, T.Err)
}

func (T *DecodeError) Unwrap() []error {
	return []error{ErrDecode, T.Err}
}

// EncodeError reports a packet that can't be sent in the current state.
type EncodeError struct {
	Key   Key
	State State
	Err   error
}

func (T *EncodeError) Error() string {
	return fmt.Sprintf("encode %s in state %s: %v", T.Key, T.State, T.Err)
}

func (T *EncodeError) Unwrap() []error {
	return []error{ErrEncode, T.Err}
}
