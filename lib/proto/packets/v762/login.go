package packets

import (
	"github.com/google/uuid"

	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

const maxUsernameLength = 16

// Chat strings are JSON text components with a larger limit.
const maxChatLength = 262144

type LoginStart struct {
	Name string
	// HasUUID is false for clients that don't know their profile id.
	HasUUID bool
	UUID    uuid.UUID
}

func (*LoginStart) Key() proto.Key {
	return key(proto.Login, proto.Serverbound, TypeLoginStart)
}

func (T *LoginStart) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.Name, err = decoder.StringMax(maxUsernameLength); err != nil {
		return
	}
	if T.HasUUID, err = decoder.Bool(); err != nil {
		return
	}
	if T.HasUUID {
		T.UUID, err = decoder.UUID()
	}
	return
}

func (T *LoginStart) WriteTo(encoder *wire.Encoder) error {
	encoder.String(T.Name)
	encoder.Bool(T.HasUUID)
	if T.HasUUID {
		encoder.UUID(T.UUID)
	}
	return nil
}

type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (*EncryptionResponse) Key() proto.Key {
	return key(proto.Login, proto.Serverbound, TypeEncryptionResponse)
}

func (T *EncryptionResponse) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.SharedSecret, err = decoder.ByteArray(); err != nil {
		return
	}
	T.VerifyToken, err = decoder.ByteArray()
	return
}

func (T *EncryptionResponse) WriteTo(encoder *wire.Encoder) error {
	encoder.ByteArray(T.SharedSecret)
	encoder.ByteArray(T.VerifyToken)
	return nil
}

type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

func (*LoginPluginResponse) Key() proto.Key {
	return key(proto.Login, proto.Serverbound, TypeLoginPluginResponse)
}

func (T *LoginPluginResponse) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.MessageID, err = decoder.VarInt(); err != nil {
		return
	}
	if T.Successful, err = decoder.Bool(); err != nil {
		return
	}
	if T.Successful {
		T.Data = decoder.Remaining()
	}
	return
}

func (T *LoginPluginResponse) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.MessageID)
	encoder.Bool(T.Successful)
	if T.Successful {
		encoder.Raw(T.Data)
	}
	return nil
}

type LoginDisconnect struct {
	Reason string
}

func (*LoginDisconnect) Key() proto.Key {
	return key(proto.Login, proto.Clientbound, TypeLoginDisconnect)
}

func (T *LoginDisconnect) ReadFrom(decoder *wire.Decoder) (err error) {
	T.Reason, err = decoder.StringMax(maxChatLength)
	return
}

func (T *LoginDisconnect) WriteTo(encoder *wire.Encoder) error {
	encoder.String(T.Reason)
	return nil
}

type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func (*EncryptionRequest) Key() proto.Key {
	return key(proto.Login, proto.Clientbound, TypeEncryptionRequest)
}

func (T *EncryptionRequest) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.ServerID, err = decoder.StringMax(20); err != nil {
		return
	}
	if T.PublicKey, err = decoder.ByteArray(); err != nil {
		return
	}
	T.VerifyToken, err = decoder.ByteArray()
	return
}

func (T *EncryptionRequest) WriteTo(encoder *wire.Encoder) error {
	encoder.String(T.ServerID)
	encoder.ByteArray(T.PublicKey)
	encoder.ByteArray(T.VerifyToken)
	return nil
}

// Property is a signed profile property, usually the skin texture.
type Property struct {
	Name      string
	Value     string
	Signed    bool
	Signature string
}

type LoginSuccess struct {
	UUID       uuid.UUID
	Username   string
	Properties []Property
}

func (*LoginSuccess) Key() proto.Key {
	return key(proto.Login, proto.Clientbound, TypeLoginSuccess)
}

func (T *LoginSuccess) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.UUID, err = decoder.UUID(); err != nil {
		return
	}
	if T.Username, err = decoder.StringMax(maxUsernameLength); err != nil {
		return
	}
	var count int32
	if count, err = decoder.VarInt(); err != nil {
		return
	}
	if count < 0 || int(count) > decoder.Len() {
		return ErrInvalidFormat
	}
	T.Properties = T.Properties[:0]
	for i := int32(0); i < count; i++ {
		var p Property
		if p.Name, err = decoder.String(); err != nil {
			return
		}
		if p.Value, err = decoder.String(); err != nil {
			return
		}
		if p.Signed, err = decoder.Bool(); err != nil {
			return
		}
		if p.Signed {
			if p.Signature, err = decoder.String(); err != nil {
				return
			}
		}
		T.Properties = append(T.Properties, p)
	}
	return
}

func (T *LoginSuccess) WriteTo(encoder *wire.Encoder) error {
	encoder.UUID(T.UUID)
	encoder.String(T.Username)
	encoder.VarInt(int32(len(T.Properties)))
	for _, p := range T.Properties {
		encoder.String(p.Name)
		encoder.String(p.Value)
		encoder.Bool(p.Signed)
		if p.Signed {
			encoder.String(p.Signature)
		}
	}
	return nil
}

// SetCompression turns on compression for every following frame in both
// directions. A negative threshold means compression stays off.
type SetCompression struct {
	Threshold int32
}

func (*SetCompression) Key() proto.Key {
	return key(proto.Login, proto.Clientbound, TypeSetCompression)
}

func (T *SetCompression) ReadFrom(decoder *wire.Decoder) (err error) {
	T.Threshold, err = decoder.VarInt()
	return
}

func (T *SetCompression) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.Threshold)
	return nil
}

type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

func (*LoginPluginRequest) Key() proto.Key {
	return key(proto.Login, proto.Clientbound, TypeLoginPluginRequest)
}

func (T *LoginPluginRequest) ReadFrom(decoder *wire.Decoder) (err error) {
	if T.MessageID, err = decoder.VarInt(); err != nil {
		return
	}
	if T.Channel, err = decoder.String(); err != nil {
		return
	}
	T.Data = decoder.Remaining()
	return
}

func (T *LoginPluginRequest) WriteTo(encoder *wire.Encoder) error {
	encoder.VarInt(T.MessageID)
	encoder.String(T.Channel)
	encoder.Raw(T.Data)
	return nil
}
