package proto

import "fmt"

// State is the protocol phase that decides which packet ids are legal.
type State int32

const (
	Handshake State = iota
	Status
	Login
	Play
)

func (T State) String() string {
	switch T {
	case Handshake:
		return "Handshake"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Play:
		return "Play"
	default:
		return fmt.Sprintf("State(%d)", int32(T))
	}
}

// Direction is the side a packet travels towards.
type Direction uint8

const (
	Serverbound Direction = iota
	Clientbound
)

func (T Direction) String() string {
	switch T {
	case Serverbound:
		return "Serverbound"
	case Clientbound:
		return "Clientbound"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(T))
	}
}

// PacketID identifies a packet within one (State, Direction).
type PacketID int32

func (T PacketID) String() string {
	return fmt.Sprintf("0x%02X", int32(T))
}

// Key is the catalog index of a packet type.
type Key struct {
	State     State
	Direction Direction
	ID        PacketID
}

func (T Key) String() string {
	return fmt.Sprintf("%s/%s/%s", T.State, T.Direction, T.ID)
}
