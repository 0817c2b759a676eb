package cache

import "fmt"

// EncodingError reports a value or type that the canonical encoding cannot
// represent. It is surfaced to the caller because no key or entry could be
// formed for the call.
type EncodingError struct {
	// Slot names the argument or result position that failed, e.g. "arg2"
	// or "result".
	Slot string

	// Type is the Go type that could not be encoded.
	Type string

	// Cause is the underlying encoder error, if any.
	Cause error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache: cannot encode %s (%s): %v", e.Slot, e.Type, e.Cause)
	}
	return fmt.Sprintf("cache: cannot encode %s (%s)", e.Slot, e.Type)
}

// Unwrap returns the underlying encoder error.
func (e *EncodingError) Unwrap() error { return e.Cause }

// DecodeError reports stored bytes that do not match the expected shape for
// the target type. Callers treat it as a cache miss, never as a hard failure.
type DecodeError struct {
	// Reason describes what failed: a short buffer, a frame version or
	// checksum mismatch, or a payload shape mismatch.
	Reason string

	// Cause is the underlying decoder error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache: decode failed: %s: %v", e.Reason, e.Cause)
	}
	return "cache: decode failed: " + e.Reason
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error { return e.Cause }

// StoreError reports a failed store transaction. It is non-fatal: caching
// silently degrades for the affected call and the computed result still
// reaches the caller.
type StoreError struct {
	// Op is the store operation that failed, e.g. "put".
	Op string

	// Cause is the underlying storage error.
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("cache: store %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying storage error.
func (e *StoreError) Unwrap() error { return e.Cause }

// StoreOpenError reports a failure to open or create the backing store. The
// store is required infrastructure, so the default process-wide engine treats
// this as fatal.
type StoreOpenError struct {
	// Path is the store location that could not be opened.
	Path string

	// Cause is the underlying open error.
	Cause error
}

// Error implements the error interface.
func (e *StoreOpenError) Error() string {
	return fmt.Sprintf("cache: cannot open store at %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying open error.
func (e *StoreOpenError) Unwrap() error { return e.Cause }

// PurityError reports a registration-time rejection: a parameter type carries
// state that behaves like a mutable alias, so a cached key could not be
// trusted to describe the value for the duration of the call. Registration
// fails before any call can reach the store.
type PurityError struct {
	// Slot names the rejected argument position.
	Slot string

	// Type is the offending Go type.
	Type string

	// Reason explains which part of the type was rejected.
	Reason string
}

// Error implements the error interface.
func (e *PurityError) Error() string {
	return fmt.Sprintf("cache: %s (%s) is not a pure parameter: %s", e.Slot, e.Type, e.Reason)
}
