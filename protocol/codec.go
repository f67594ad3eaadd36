package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxFrameBytes bounds every frame in both directions. There is no length
// delimiter on the wire: one write is assumed to arrive as one read, and a
// message whose encoding exceeds the bound would be truncated, so encoding
// refuses it outright.
const MaxFrameBytes = 4096

// ErrFrameTooLarge reports a message that cannot fit in a single frame.
var ErrFrameTooLarge = errors.New("protocol: frame exceeds 4096 bytes")

// EncodeFrame marshals v into one wire frame.
func EncodeFrame(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %v", err)
	}
	if len(data) > MaxFrameBytes {
		return nil, ErrFrameTooLarge
	}
	return data, nil
}

// DecodeFrame unmarshals one received frame into v.
func DecodeFrame(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode frame: %v", err)
	}
	return nil
}
