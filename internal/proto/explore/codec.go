package explore

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype the explore service speaks
// ("application/grpc+json" on the wire).
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec marshals the plain Go message structs of this package.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
