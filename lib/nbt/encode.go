package nbt

import (
	"fmt"
	"math"

	"gfx.cafe/gfx/mcwire/lib/wire"
)

// EncodeRoot encodes a named root compound.
func EncodeRoot(root Named) ([]byte, error) {
	var e wire.Encoder
	if err := Write(&e, root); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func Write(e *wire.Encoder, root Named) error {
	e.Uint8(byte(KindCompound))
	if err := writeString(e, root.Name); err != nil {
		return err
	}
	return writeCompound(e, root.Tag, 1)
}

// WriteOptional writes root, or a lone End tag when root is nil.
func WriteOptional(e *wire.Encoder, root *Named) error {
	if root == nil {
		e.Uint8(byte(KindEnd))
		return nil
	}
	return Write(e, *root)
}

func writeString(e *wire.Encoder, v string) error {
	if len(v) > math.MaxUint16 {
		return fmt.Errorf("nbt: string of %d bytes does not fit", len(v))
	}
	e.Uint16(uint16(len(v)))
	e.Raw([]byte(v))
	return nil
}

func writeCompound(e *wire.Encoder, c Compound, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	for i, entry := range c {
		if entry.Tag == nil {
			return fmt.Errorf("nbt: nil tag for %q", entry.Name)
		}
		for _, prev := range c[:i] {
			if prev.Name == entry.Name {
				return fmt.Errorf("%w: %q", ErrDuplicateName, entry.Name)
			}
		}
		e.Uint8(byte(entry.Tag.Kind()))
		if err := writeString(e, entry.Name); err != nil {
			return err
		}
		if err := writePayload(e, entry.Tag, depth); err != nil {
			return err
		}
	}
	e.Uint8(byte(KindEnd))
	return nil
}

func writeList(e *wire.Encoder, l List, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	for _, item := range l.Items {
		if item == nil || item.Kind() != l.Elem {
			return ErrListKindMismatch
		}
	}
	e.Uint8(byte(l.Elem))
	e.Int32(int32(len(l.Items)))
	for _, item := range l.Items {
		if err := writePayload(e, item, depth); err != nil {
			return err
		}
	}
	return nil
}

func writePayload(e *wire.Encoder, tag Tag, depth int) error {
	switch v := tag.(type) {
	case Byte:
		e.Int8(int8(v))
	case Short:
		e.Int16(int16(v))
	case Int:
		e.Int32(int32(v))
	case Long:
		e.Int64(int64(v))
	case Float:
		e.Float32(float32(v))
	case Double:
		e.Float64(float64(v))
	case ByteArray:
		e.Int32(int32(len(v)))
		e.Raw(v)
	case String:
		return writeString(e, string(v))
	case List:
		return writeList(e, v, depth+1)
	case Compound:
		return writeCompound(e, v, depth+1)
	case IntArray:
		e.Int32(int32(len(v)))
		for _, x := range v {
			e.Int32(x)
		}
	case LongArray:
		e.Int32(int32(len(v)))
		for _, x := range v {
			e.Int64(x)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownTag, tag)
	}
	return nil
}
