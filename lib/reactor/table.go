package reactor

import (
	"fmt"

	"gfx.cafe/gfx/mcwire/lib/proto"
)

// Table maps (state, clientbound id) to at most one binding. It is read-only
// once built.
type Table struct {
	bindings map[proto.Key]Binding
}

func NewTable(bindings ...Binding) (*Table, error) {
	t := &Table{
		bindings: make(map[proto.Key]Binding, len(bindings)),
	}
	for _, b := range bindings {
		if b.Key.Direction != proto.Clientbound {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotClientbound, b.Name, b.Key)
		}
		if prev, ok := t.bindings[b.Key]; ok {
			return nil, fmt.Errorf("%w: %s bound to %s and %s", ErrDuplicateBinding, b.Key, prev.Name, b.Name)
		}
		t.bindings[b.Key] = b
	}
	return t, nil
}

func MustNewTable(bindings ...Binding) *Table {
	t, err := NewTable(bindings...)
	if err != nil {
		panic(err)
	}
	return t
}

// Override returns a new table with bindings replacing any existing binding
// for the same key. T is left unchanged.
func (T *Table) Override(bindings ...Binding) (*Table, error) {
	t := &Table{
		bindings: make(map[proto.Key]Binding, len(T.bindings)+len(bindings)),
	}
	for k, b := range T.bindings {
		t.bindings[k] = b
	}
	for _, b := range bindings {
		if b.Key.Direction != proto.Clientbound {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotClientbound, b.Name, b.Key)
		}
		t.bindings[b.Key] = b
	}
	return t, nil
}

// Without returns a new table with the bindings for keys removed.
func (T *Table) Without(keys ...proto.Key) *Table {
	t := &Table{
		bindings: make(map[proto.Key]Binding, len(T.bindings)),
	}
	for k, b := range T.bindings {
		t.bindings[k] = b
	}
	for _, k := range keys {
		delete(t.bindings, k)
	}
	return t
}

func (T *Table) Lookup(state proto.State, id proto.PacketID) (Binding, bool) {
	if T == nil {
		return Binding{}, false
	}
	b, ok := T.bindings[proto.Key{State: state, Direction: proto.Clientbound, ID: id}]
	return b, ok
}

func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.bindings)
}
