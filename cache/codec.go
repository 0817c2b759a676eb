package cache

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts a typed value to a canonical byte encoding and back.
//
// Contract:
//   - Marshal is deterministic for a given logical value: no map ordering,
//     padding, or allocator-dependent variation leaks into the bytes.
//   - Unmarshal succeeds only if the bytes match the expected shape for the
//     target type; anything else returns a *DecodeError.
type Codec interface {
	// Marshal serializes v into canonical bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error

	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// Entry frame layout: one version byte, an 8-byte big-endian xxhash64
// checksum over the payload, then the canonical msgpack payload. The
// checksum lets Unmarshal validate buffer integrity before decoding and the
// payload is decoded in place, so reading a large entry costs one hash pass
// over the stored slice rather than a defensive copy.
const (
	frameVersion    = 0x01
	frameHeaderSize = 1 + 8
)

// canonicalCodec is the default Codec: msgpack with sorted map keys and
// compact integer/float encodings, framed with the checksum header.
type canonicalCodec struct{}

// NewCanonicalCodec returns the default canonical codec.
func NewCanonicalCodec() Codec {
	return canonicalCodec{}
}

// Marshal implements Codec.
func (canonicalCodec) Marshal(v any) ([]byte, error) {
	payload, err := marshalCanonical(v)
	if err != nil {
		return nil, &EncodingError{Slot: "result", Type: fmt.Sprintf("%T", v), Cause: err}
	}

	buf := make([]byte, 0, frameHeaderSize+len(payload))
	buf = append(buf, frameVersion)
	buf = binary.BigEndian.AppendUint64(buf, xxhash.Sum64(payload))
	return append(buf, payload...), nil
}

// Unmarshal implements Codec.
func (canonicalCodec) Unmarshal(data []byte, v any) error {
	if len(data) < frameHeaderSize {
		return &DecodeError{Reason: fmt.Sprintf("entry too short (%d bytes)", len(data))}
	}
	if data[0] != frameVersion {
		return &DecodeError{Reason: fmt.Sprintf("unknown frame version 0x%02x", data[0])}
	}

	payload := data[frameHeaderSize:]
	if sum := xxhash.Sum64(payload); sum != binary.BigEndian.Uint64(data[1:frameHeaderSize]) {
		return &DecodeError{Reason: "checksum mismatch"}
	}

	if err := msgpack.NewDecoder(bytes.NewReader(payload)).Decode(v); err != nil {
		return &DecodeError{Reason: "payload shape mismatch", Cause: err}
	}
	return nil
}

// Name implements Codec.
func (canonicalCodec) Name() string { return "msgpack-canonical" }

// marshalCanonical encodes v as canonical msgpack: map keys sorted, ints and
// floats in their smallest representation. These settings are what make the
// bytes stable across processes and architectures.
func marshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	enc.UseCompactFloats(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
