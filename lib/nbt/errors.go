package nbt

import "errors"

var (
	ErrTruncatedCompound = errors.New("nbt: compound is missing its end tag")
	ErrListKindMismatch  = errors.New("nbt: list element does not match declared kind")
	ErrUnknownTag        = errors.New("nbt: unknown tag kind")
	ErrRootNotCompound   = errors.New("nbt: root tag is not a compound")
	ErrDuplicateName     = errors.New("nbt: duplicate name in compound")
	ErrNegativeLength    = errors.New("nbt: negative length")
	ErrTooDeep           = errors.New("nbt: nesting too deep")
)
