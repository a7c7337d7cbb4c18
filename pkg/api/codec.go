package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Ensure JSONCodec implements connect.Codec
var _ connect.Codec = JSONCodec{}

// JSONCodec carries plain Go structs as application/json. It replaces
// Connect's protobuf JSON codec, which only accepts proto.Message values.
type JSONCodec struct{}

// Name is the codec name used in the Content-Type header.
func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
