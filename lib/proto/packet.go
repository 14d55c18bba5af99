package proto

import "gfx.cafe/gfx/mcwire/lib/wire"

// Packet is a structured packet value. Key is static per type, so dispatch
// never needs to inspect the dynamic type.
type Packet interface {
	Key() Key

	// WriteTo encodes the packet body, without the id.
	WriteTo(encoder *wire.Encoder) error
}

// ReadablePacket is a Packet that can decode its own body.
type ReadablePacket interface {
	Packet

	ReadFrom(decoder *wire.Decoder) error
}

// Transitioner is implemented by outbound packets that move the connection
// to another state once written.
type Transitioner interface {
	Packet

	Transition() (State, error)
}

// Descriptor is the registry's handle on one packet type.
type Descriptor struct {
	Key  Key
	Name string

	Decode func(decoder *wire.Decoder) (Packet, error)
}

// Describe builds the descriptor for the packet type T.
func Describe[T any, PT interface {
	ReadablePacket
	*T
}](name string) Descriptor {
	return Descriptor{
		Key:  PT(new(T)).Key(),
		Name: name,
		Decode: func(decoder *wire.Decoder) (Packet, error) {
			p := PT(new(T))
			if err := p.ReadFrom(decoder); err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

// Opaque is a packet whose body is kept as raw bytes. It lets a catalog carry
// ids whose layout is not modelled while still framing them correctly.
type Opaque struct {
	ID   Key
	Data []byte
}

func (T *Opaque) Key() Key {
	return T.ID
}

func (T *Opaque) WriteTo(encoder *wire.Encoder) error {
	encoder.Raw(T.Data)
	return nil
}

func (T *Opaque) ReadFrom(decoder *wire.Decoder) error {
	T.Data = append(T.Data[:0], decoder.Remaining()...)
	return nil
}

// DescribeOpaque builds a descriptor that decodes key into an *Opaque.
func DescribeOpaque(key Key, name string) Descriptor {
	return Descriptor{
		Key:  key,
		Name: name,
		Decode: func(decoder *wire.Decoder) (Packet, error) {
			p := &Opaque{ID: key}
			if err := p.ReadFrom(decoder); err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}
