package nbt

import (
	"errors"
	"fmt"
	"math"

	"gfx.cafe/gfx/mcwire/lib/wire"
)

// MaxDepth bounds compound/list nesting.
const MaxDepth = 512

// DecodeRoot decodes a complete root compound. Trailing bytes are an error.
func DecodeRoot(b []byte) (Named, error) {
	d := wire.NewDecoder(b)
	root, err := Read(d)
	if err != nil {
		return Named{}, err
	}
	if d.Len() != 0 {
		return Named{}, fmt.Errorf("nbt: %d trailing bytes after root", d.Len())
	}
	return root, nil
}

// Read decodes a named root compound from the cursor.
func Read(d *wire.Decoder) (Named, error) {
	kind, err := d.Uint8()
	if err != nil {
		return Named{}, err
	}
	if Kind(kind) != KindCompound {
		return Named{}, ErrRootNotCompound
	}
	return readRoot(d)
}

// ReadOptional decodes a root compound that may be absent, which the protocol
// encodes as a lone End tag.
func ReadOptional(d *wire.Decoder) (*Named, error) {
	kind, err := d.Uint8()
	if err != nil {
		return nil, err
	}
	switch Kind(kind) {
	case KindEnd:
		return nil, nil
	case KindCompound:
		root, err := readRoot(d)
		if err != nil {
			return nil, err
		}
		return &root, nil
	default:
		return nil, ErrRootNotCompound
	}
}

func readRoot(d *wire.Decoder) (Named, error) {
	name, err := readString(d)
	if err != nil {
		return Named{}, truncated(err)
	}
	c, err := readCompound(d, 1)
	if err != nil {
		return Named{}, err
	}
	return Named{Name: name, Tag: c}, nil
}

func readString(d *wire.Decoder) (string, error) {
	n, err := d.Uint16()
	if err != nil {
		return "", err
	}
	b, err := d.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// truncated marks a read that ran out of input before the enclosing
// compound's End tag.
func truncated(err error) error {
	if errors.Is(err, wire.ErrUnexpectedEOF) && !errors.Is(err, ErrTruncatedCompound) {
		return fmt.Errorf("%w: %w", ErrTruncatedCompound, err)
	}
	return err
}

func readCompound(d *wire.Decoder, depth int) (Compound, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	c := Compound{}
	for {
		kind, err := d.Uint8()
		if err != nil {
			return nil, truncated(err)
		}
		if Kind(kind) == KindEnd {
			return c, nil
		}
		name, err := readString(d)
		if err != nil {
			return nil, truncated(err)
		}
		if _, ok := c.Get(name); ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		tag, err := readPayload(d, Kind(kind), depth)
		if err != nil {
			return nil, truncated(err)
		}
		c = append(c, Entry{Name: name, Tag: tag})
	}
}

func readList(d *wire.Decoder, depth int) (List, error) {
	if depth > MaxDepth {
		return List{}, ErrTooDeep
	}
	elem, err := d.Uint8()
	if err != nil {
		return List{}, err
	}
	count, err := d.Int32()
	if err != nil {
		return List{}, err
	}
	if Kind(elem) == KindEnd {
		// some encoders write End lists with a nonzero count; there is nothing
		// to read for End elements so the list is empty either way
		return List{Elem: KindEnd, Items: []Tag{}}, nil
	}
	if Kind(elem) > KindLongArray {
		return List{}, fmt.Errorf("%w: %d", ErrUnknownTag, elem)
	}
	if count < 0 {
		return List{}, ErrNegativeLength
	}
	// every non-End payload is at least one byte
	if int(count) > d.Len() {
		return List{}, wire.ErrUnexpectedEOF
	}
	l := List{Elem: Kind(elem), Items: make([]Tag, 0, count)}
	for i := int32(0); i < count; i++ {
		tag, err := readPayload(d, Kind(elem), depth)
		if err != nil {
			return List{}, err
		}
		l.Items = append(l.Items, tag)
	}
	return l, nil
}

func readArrayLength(d *wire.Decoder, width int) (int, error) {
	n, err := d.Int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeLength
	}
	if int64(n)*int64(width) > int64(d.Len()) {
		return 0, wire.ErrUnexpectedEOF
	}
	return int(n), nil
}

func readPayload(d *wire.Decoder, kind Kind, depth int) (Tag, error) {
	switch kind {
	case KindByte:
		v, err := d.Int8()
		return Byte(v), err
	case KindShort:
		v, err := d.Int16()
		return Short(v), err
	case KindInt:
		v, err := d.Int32()
		return Int(v), err
	case KindLong:
		v, err := d.Int64()
		return Long(v), err
	case KindFloat:
		v, err := d.Uint32()
		return Float(math.Float32frombits(v)), err
	case KindDouble:
		v, err := d.Uint64()
		return Double(math.Float64frombits(v)), err
	case KindByteArray:
		n, err := readArrayLength(d, 1)
		if err != nil {
			return nil, err
		}
		b, err := d.Bytes(n)
		if err != nil {
			return nil, err
		}
		return append(ByteArray{}, b...), nil
	case KindString:
		v, err := readString(d)
		return String(v), err
	case KindList:
		return readList(d, depth+1)
	case KindCompound:
		return readCompound(d, depth+1)
	case KindIntArray:
		n, err := readArrayLength(d, 4)
		if err != nil {
			return nil, err
		}
		v := make(IntArray, n)
		for i := range v {
			if v[i], err = d.Int32(); err != nil {
				return nil, err
			}
		}
		return v, nil
	case KindLongArray:
		n, err := readArrayLength(d, 8)
		if err != nil {
			return nil, err
		}
		v := make(LongArray, n)
		for i := range v {
			if v[i], err = d.Int64(); err != nil {
				return nil, err
			}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, byte(kind))
	}
}
