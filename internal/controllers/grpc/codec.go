package grpc

import (
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype under which the MessagePack codec is
// registered. Calls select it with grpc.CallContentSubtype(CodecName).
const CodecName = "msgpack"

// msgpackCodec carries the plain Go message structs of this package over
// gRPC. NaN event times survive the round trip.
type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (msgpackCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}
