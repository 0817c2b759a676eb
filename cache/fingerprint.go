package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/scanner"
	"go/token"
)

// Fingerprint is a 256-bit digest over a function implementation. It scopes
// cache entries to one version of that implementation: when the fingerprint
// changes, entries keyed under the old value become unreachable and callers
// recompute without any explicit cache clearing.
type Fingerprint [sha256.Size]byte

// FingerprintOf derives a fingerprint from Go-like source text.
//
// The source is reduced to its token sequence before hashing, so whitespace,
// indentation, and comments never change the result, while any token-level
// edit does. Automatically inserted semicolons are dropped from the sequence
// so that splitting a statement list across lines is also neutral.
//
// This is a pure hashing step with no error path: malformed source still
// produces a deterministic digest over whatever tokens were recognized.
func FingerprintOf(source string) Fingerprint {
	src := []byte(source)

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, nil, 0)

	h := sha256.New()
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON {
			continue
		}
		if lit == "" {
			lit = tok.String()
		}
		h.Write([]byte(lit))
		h.Write([]byte{0})
	}

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

// ParseFingerprint decodes a hex-encoded 256-bit digest, for callers that
// supply a build-assigned source hash or explicit version tag instead of
// source text.
func ParseFingerprint(s string) (Fingerprint, error) {
	var fp Fingerprint
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fp, fmt.Errorf("cache: invalid fingerprint %q: %w", s, err)
	}
	if len(raw) != len(fp) {
		return fp, fmt.Errorf("cache: invalid fingerprint length %d, want %d", len(raw), len(fp))
	}
	copy(fp[:], raw)
	return fp, nil
}

// String returns the digest as lowercase hex.
func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// IsZero reports whether the fingerprint is the zero value, which usually
// indicates a registration that forgot to supply one.
func (fp Fingerprint) IsZero() bool {
	return fp == Fingerprint{}
}
