package packets

import (
	"gfx.cafe/gfx/mcwire/lib/nbt"
	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

type BlockEntityData struct {
	Location wire.Position
	Type     int32
	Data     *nbt.Named
}

func (*BlockEntityData) Key() proto.Key {
	return key(proto.Play, proto.Clientbound, TypeBlockEntityData)
}

func (T *BlockEntityData) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.Location, err = decoder.BlockPosition(); err != nil {
		return
	}
	if T.Type, err = decoder.VarInt(); err != nil {
		return
	}
	T.Data, err = nbt.ReadOptional(decoder)
	return
}

func (T *BlockEntityData) WriteTo(encoder *wire.Encoder) error {
	encoder.BlockPosition(T.Location)
	encoder.VarInt(T.Type)
	return nbt.WriteOptional(encoder, T.Data)
}

type PlayDisconnect struct {
	Reason string
}

func (*PlayDisconnect) Key() proto.Key {
	return key(proto.Play, proto.Clientbound, TypePlayDisconnect)
}

func (T *PlayDisconnect) ReadFrom(decoder *wire.Decoder) (err error) {
	T.Reason, err = decoder.StringMax(maxChatLength)
	return
}

func (T *PlayDisconnect) WriteTo(encoder *wire.Encoder) error {
	encoder.String(T.Reason)
	return nil
}

type KeepAlive struct {
	ID int64
}

func (*KeepAlive) Key() proto.Key {
	return key(proto.Play, proto.Clientbound, TypeKeepAlive)
}

func (T *KeepAlive) ReadFrom(decoder *wire.Decoder) (err error) {
	T.ID, err = decoder.Int64()
	return
}

func (T *KeepAlive) WriteTo(encoder *wire.Encoder) error {
	encoder.Int64(T.ID)
	return nil
}

type Ping struct {
	ID int32
}

func (*Ping) Key() proto.Key {
	return key(proto.Play, proto.Clientbound, TypePing)
}

func (T *Ping) ReadFrom(decoder *wire.Decoder) (err error) {
	T.ID, err = decoder.Int32()
	return
}

func (T *Ping) WriteTo(encoder *wire.Encoder) error {
	encoder.Int32(T.ID)
	return nil
}

// Relative flags in SynchronizePlayerPosition.
const (
	RelativeX byte = 1 << iota
	RelativeY
	RelativeZ
	RelativeYaw
	RelativePitch
)

type SynchronizePlayerPosition struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      byte
	TeleportID int32
}

func (*SynchronizePlayerPosition) Key() proto.Key {
	return key(proto.Play, proto.Clientbound, TypeSynchronizePlayerPosition)
}

func (T *SynchronizePlayerPosition) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.X, err = decoder.Float64(); err != nil {
		return
	}
	if T.Y, err = decoder.Float64(); err != nil {
		return
	}
	if T.Z, err = decoder.Float64(); err != nil {
		return
	}
	if T.Yaw, err = decoder.Float32(); err != nil {
		return
	}
	if T.Pitch, err = decoder.Float32(); err != nil {
		return
	}
	if T.Flags, err = decoder.Uint8(); err != nil {
		return
	}
	T.TeleportID, err = decoder.VarInt()
	return
}

func (T *SynchronizePlayerPosition) WriteTo(encoder *wire.Encoder) error {
	encoder.Float64(T.X)
	encoder.Float64(T.Y)
	encoder.Float64(T.Z)
	encoder.Float32(T.Yaw)
	encoder.Float32(T.Pitch)
	encoder.Uint8(T.Flags)
	encoder.VarInt(T.TeleportID)
	return nil
}

type ConfirmTeleportation struct {
	TeleportID int32
}

func (*ConfirmTeleportation) Key() proto.Key {
	return key(proto.Play, proto.Serverbound, TypeConfirmTeleportation)
}

func (T *ConfirmTeleportation) ReadFrom(decoder *wire.Decoder) (err error) {
	T.TeleportID, err = decoder.VarInt()
	return
}

func (T *ConfirmTeleportation) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.TeleportID)
	return nil
}

type KeepAliveResponse struct {
	ID int64
}

func (*KeepAliveResponse) Key() proto.Key {
	return key(proto.Play, proto.Serverbound, TypeKeepAliveResponse)
}

func (T *KeepAliveResponse) ReadFrom(decoder *wire.Decoder) (err error) {
	T.ID, err = decoder.Int64()
	return
}

func (T *KeepAliveResponse) WriteTo(encoder *wire.Encoder) error {
	encoder.Int64(T.ID)
	return nil
}

type SetPlayerPositionAndRotation struct {
	X, FeetY, Z float64
	Yaw, Pitch  float32
	OnGround    bool
}

func (*SetPlayerPositionAndRotation) Key() proto.Key {
	return key(proto.Play, proto.Serverbound, TypeSetPlayerPositionAndRotation)
}

func (T *SetPlayerPositionAndRotation) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.X, err = decoder.Float64(); err != nil {
		return
	}
	if T.FeetY, err = decoder.Float64(); err != nil {
		return
	}
	if T.Z, err = decoder.Float64(); err != nil {
		return
	}
	if T.Yaw, err = decoder.Float32(); err != nil {
		return
	}
	if T.Pitch, err = decoder.Float32(); err != nil {
		return
	}
	T.OnGround, err = decoder.Bool()
	return
}

func (T *SetPlayerPositionAndRotation) WriteTo(encoder *wire.Encoder) error {
	encoder.Float64(T.X)
	encoder.Float64(T.FeetY)
	encoder.Float64(T.Z)
	encoder.Float32(T.Yaw)
	encoder.Float32(T.Pitch)
	encoder.Bool(T.OnGround)
	return nil
}

type Pong struct {
	ID int32
}

func (*Pong) Key() proto.Key {
	return key(proto.Play, proto.Serverbound, TypePong)
}

func (T *Pong) ReadFrom(decoder *wire.Decoder) (err error) {
	T.ID, err = decoder.Int32()
	return
}

func (T *Pong) WriteTo(encoder *wire.Encoder) error {
	encoder.Int32(T.ID)
	return nil
}
