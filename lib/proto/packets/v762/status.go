package packets

import (
	jsoniter "github.com/json-iterator/go"

	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

type StatusRequest struct{}

func (*StatusRequest) Key() proto.Key {
	return key(proto.Status, proto.Serverbound, TypeStatusRequest)
}

func (*StatusRequest) ReadFrom(*wire.Decoder) error { return nil }

func (*StatusRequest) WriteTo(*wire.Encoder) error { return nil }

type PingRequest struct {
	Payload int64
}

func (*PingRequest) Key() proto.Key {
	return key(proto.Status, proto.Serverbound, TypePingRequest)
}

func (T *PingRequest) ReadFrom(decoder *wire.Decoder) (err error) {
	T.Payload, err = decoder.Int64()
	return
}

func (T *PingRequest) WriteTo(encoder *wire.Encoder) error {
	encoder.Int64(T.Payload)
	return nil
}

type StatusResponse struct {
	JSON string
}

func (*StatusResponse) Key() proto.Key {
	return key(proto.Status, proto.Clientbound, TypeStatusResponse)
}

func (T *StatusResponse) ReadFrom(decoder *wire.Decoder) (err error) {
	T.JSON, err = decoder.String()
	return
}

func (T *StatusResponse) WriteTo(encoder *wire.Encoder) error {
	encoder.String(T.JSON)
	return nil
}

// ServerStatus is the subset of the status document most callers need.
type ServerStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description jsoniter.RawMessage `json:"description"`
}

func (T *StatusResponse) Status() (ServerStatus, error) {
	var s ServerStatus
	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(T.JSON), &s)
	return s, err
}

type PingResponse struct {
	Payload int64
}

func (*PingResponse) Key() proto.Key {
	return key(proto.Status, proto.Clientbound, TypePingResponse)
}

func (T *PingResponse) ReadFrom(decoder *wire.Decoder) (err error) {
	T.Payload, err = decoder.Int64()
	return
}

func (T *PingResponse) WriteTo(encoder *wire.Encoder) error {
	encoder.Int64(T.Payload)
	return nil
}
