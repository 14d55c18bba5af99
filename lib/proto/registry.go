package proto

import (
	"fmt"

	"gfx.cafe/gfx/mcwire/lib/wire"
)

// Registry maps (state, direction, id) to packet descriptors. It is built once
// and read-only afterwards, so it is safe to share between connections.
type Registry struct {
	descriptors map[Key]Descriptor
}

func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make(map[Key]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if prev, ok := r.descriptors[d.Key]; ok {
			return nil, fmt.Errorf("%w: %s registered as %s and %s", ErrDuplicateKey, d.Key, prev.Name, d.Name)
		}
		r.descriptors[d.Key] = d
	}
	return r, nil
}

func MustNewRegistry(descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// With returns a new registry with extra descriptors added on top of T.
func (T *Registry) With(descriptors ...Descriptor) (*Registry, error) {
	all := make([]Descriptor, 0, len(T.descriptors)+len(descriptors))
	for _, d := range T.descriptors {
		all = append(all, d)
	}
	all = append(all, descriptors...)
	return NewRegistry(all...)
}

func (T *Registry) Lookup(key Key) (Descriptor, bool) {
	d, ok := T.descriptors[key]
	return d, ok
}

func (T *Registry) Len() int {
	return len(T.descriptors)
}

// Decode decodes payload, the packet body following the id. Unread trailing
// bytes are ignored.
func (T *Registry) Decode(key Key, payload []byte) (Packet, error) {
	d, ok := T.descriptors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPacket, key)
	}
	packet, err := d.Decode(wire.NewDecoder(payload))
	if err != nil {
		return nil, &DecodeError{Key: key, Name: d.Name, Err: err}
	}
	return packet, nil
}

// DecodeFrame splits a decompressed frame body into id and payload and decodes
// it.
func (T *Registry) DecodeFrame(state State, direction Direction, body []byte) (Packet, error) {
	id, n, err := wire.ConsumeVarInt(body)
	if err != nil {
		return nil, &DecodeError{Key: Key{State: state, Direction: direction, ID: -1}, Name: "packet id", Err: err}
	}
	return T.Decode(Key{State: state, Direction: direction, ID: PacketID(id)}, body[n:])
}

// Encode appends the packet id and body to encoder, after checking that the
// packet is registered for state and direction.
func (T *Registry) Encode(state State, direction Direction, packet Packet, encoder *wire.Encoder) error {
	key := packet.Key()
	if key.State != state {
		return &EncodeError{Key: key, State: state, Err: fmt.Errorf("packet belongs to state %s", key.State)}
	}
	if key.Direction != direction {
		return &EncodeError{Key: key, State: state, Err: ErrWrongDirection}
	}
	if _, ok := T.descriptors[key]; !ok {
		return &EncodeError{Key: key, State: state, Err: ErrUnknownPacket}
	}
	encoder.VarInt(int32(key.ID))
	if err := packet.WriteTo(encoder); err != nil {
		return &EncodeError{Key: key, State: state, Err: err}
	}
	return nil
}
