// Package packets is the packet catalog for protocol version 762.
package packets

import (
	"errors"

	"gfx.cafe/gfx/mcwire/lib/proto"
)

const (
	ProtocolVersion = 762
	ReleaseName     = "1.19.4"
)

var (
	ErrInvalidFormat = errors.New("invalid packet format")
)

const (
	TypeHandshake proto.PacketID = 0x00

	TypeStatusRequest  proto.PacketID = 0x00
	TypePingRequest    proto.PacketID = 0x01
	TypeStatusResponse proto.PacketID = 0x00
	TypePingResponse   proto.PacketID = 0x01

	TypeLoginStart          proto.PacketID = 0x00
	TypeEncryptionResponse  proto.PacketID = 0x01
	TypeLoginPluginResponse proto.PacketID = 0x02
	TypeLoginDisconnect     proto.PacketID = 0x00
	TypeEncryptionRequest   proto.PacketID = 0x01
	TypeLoginSuccess        proto.PacketID = 0x02
	TypeSetCompression      proto.PacketID = 0x03
	TypeLoginPluginRequest  proto.PacketID = 0x04

	TypeBlockEntityData           proto.PacketID = 0x08
	TypePlayDisconnect            proto.PacketID = 0x1A
	TypeKeepAlive                 proto.PacketID = 0x23
	TypePing                      proto.PacketID = 0x32
	TypeSynchronizePlayerPosition proto.PacketID = 0x3C

	TypeConfirmTeleportation         proto.PacketID = 0x00
	TypeKeepAliveResponse            proto.PacketID = 0x12
	TypeSetPlayerPositionAndRotation proto.PacketID = 0x15
	TypePong                         proto.PacketID = 0x20
)

func key(state proto.State, direction proto.Direction, id proto.PacketID) proto.Key {
	return proto.Key{State: state, Direction: direction, ID: id}
}

// Descriptors lists every packet type in the catalog.
func Descriptors() []proto.Descriptor {
	return []proto.Descriptor{
		proto.Describe[Handshake]("Handshake"),

		proto.Describe[StatusRequest]("StatusRequest"),
		proto.Describe[PingRequest]("PingRequest"),
		proto.Describe[StatusResponse]("StatusResponse"),
		proto.Describe[PingResponse]("PingResponse"),

		proto.Describe[LoginStart]("LoginStart"),
		proto.Describe[EncryptionResponse]("EncryptionResponse"),
		proto.Describe[LoginPluginResponse]("LoginPluginResponse"),
		proto.Describe[LoginDisconnect]("LoginDisconnect"),
		proto.Describe[EncryptionRequest]("EncryptionRequest"),
		proto.Describe[LoginSuccess]("LoginSuccess"),
		proto.Describe[SetCompression]("SetCompression"),
		proto.Describe[LoginPluginRequest]("LoginPluginRequest"),

		proto.Describe[BlockEntityData]("BlockEntityData"),
		proto.Describe[PlayDisconnect]("PlayDisconnect"),
		proto.Describe[KeepAlive]("KeepAlive"),
		proto.Describe[Ping]("Ping"),
		proto.Describe[SynchronizePlayerPosition]("SynchronizePlayerPosition"),

		proto.Describe[ConfirmTeleportation]("ConfirmTeleportation"),
		proto.Describe[KeepAliveResponse]("KeepAliveResponse"),
		proto.Describe[SetPlayerPositionAndRotation]("SetPlayerPositionAndRotation"),
		proto.Describe[Pong]("Pong"),
	}
}

// NewRegistry returns a registry holding the catalog plus any extra
// descriptors.
func NewRegistry(extra ...proto.Descriptor) (*proto.Registry, error) {
	return proto.NewRegistry(append(Descriptors(), extra...)...)
}
