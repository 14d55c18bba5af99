// Package nbt implements the named binary tag tree format embedded in packet
// payloads.
package nbt

import "fmt"

// Kind is the one byte type id that prefixes every tag.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

func (T Kind) String() string {
	switch T {
	case KindEnd:
		return "End"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindByteArray:
		return "ByteArray"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindCompound:
		return "Compound"
	case KindIntArray:
		return "IntArray"
	case KindLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Kind(%d)", byte(T))
	}
}

// Tag is a node of the tree. The concrete types below are the only
// implementations. Empty containers decode as empty, non-nil values.
type Tag interface {
	Kind() Kind
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

// List is a homogeneous sequence. Elem is recorded once for the whole list and
// every element must be of that kind.
type List struct {
	Elem  Kind
	Items []Tag
}

// Entry is one named member of a Compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Compound is an ordered mapping of unique names to tags.
type Compound []Entry

// Named is a root tag together with its (possibly empty) name.
type Named struct {
	Name string
	Tag  Compound
}

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (ByteArray) Kind() Kind { return KindByteArray }
func (String) Kind() Kind    { return KindString }
func (List) Kind() Kind      { return KindList }
func (Compound) Kind() Kind  { return KindCompound }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }

// Get returns the tag stored under name.
func (T Compound) Get(name string) (Tag, bool) {
	for _, e := range T {
		if e.Name == name {
			return e.Tag, true
		}
	}
	return nil, false
}

// Set replaces the tag stored under name or appends a new entry, keeping
// names unique.
func (T Compound) Set(name string, tag Tag) Compound {
	for i := range T {
		if T[i].Name == name {
			T[i].Tag = tag
			return T
		}
	}
	return append(T, Entry{Name: name, Tag: tag})
}
