package cache

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Arg is one argument of a memoized call, in declaration order. The name is
// carried for diagnostics only; keys are positional, so renaming a parameter
// never invalidates existing entries.
type Arg struct {
	Name  string
	Value any
}

// KeyEncoder builds canonical cache key bytes from a fingerprint and the
// ordered argument list of one call.
//
// Contract: values are encoded by content, never by memory identity, and
// content-equal inputs produce byte-identical keys across processes and
// machine architectures. Key bytes are a pure function of the fingerprint
// and the argument values; no process state participates.
type KeyEncoder interface {
	// EncodeKey returns the canonical key for one call, or a
	// *EncodingError if an argument cannot be represented.
	EncodeKey(fp Fingerprint, args []Arg) ([]byte, error)
}

// canonicalKeyEncoder encodes keys as a canonical msgpack array holding the
// fingerprint followed by each argument value in order. Pointer arguments are
// encoded by their pointee; addresses are not content and never participate.
type canonicalKeyEncoder struct{}

// NewKeyEncoder returns the default canonical key encoder.
func NewKeyEncoder() KeyEncoder {
	return canonicalKeyEncoder{}
}

// EncodeKey implements KeyEncoder.
func (canonicalKeyEncoder) EncodeKey(fp Fingerprint, args []Arg) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	enc.UseCompactFloats(true)

	if err := enc.EncodeArrayLen(len(args) + 1); err != nil {
		return nil, &EncodingError{Slot: "key", Type: "header", Cause: err}
	}
	if err := enc.EncodeBytes(fp[:]); err != nil {
		return nil, &EncodingError{Slot: "fingerprint", Type: "[]byte", Cause: err}
	}
	for _, a := range args {
		if err := enc.Encode(a.Value); err != nil {
			return nil, &EncodingError{Slot: a.Name, Type: fmt.Sprintf("%T", a.Value), Cause: err}
		}
	}
	return buf.Bytes(), nil
}
