package cache

import (
	"bytes"
	"errors"
	"testing"
)

func TestKeyEncoder_Deterministic(t *testing.T) {
	fp := FingerprintOf(fibSource)
	args := []Arg{
		{Name: "a1", Value: "hello"},
		{Name: "a2", Value: 2},
		{Name: "a3", Value: map[string]int{"c": 3, "a": 1, "e": 5, "b": 2, "d": 4}},
	}

	// Fresh encoder instances stand in for separate processes: nothing
	// but the inputs may influence the bytes. Map iteration order is
	// randomized per run, so repeat enough times to catch it leaking in.
	first, err := NewKeyEncoder().EncodeKey(fp, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := NewKeyEncoder().EncodeKey(fp, args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("expected byte-identical keys for equal inputs")
		}
	}
}

func TestKeyEncoder_PointerEncodesPointee(t *testing.T) {
	enc := NewKeyEncoder()
	fp := FingerprintOf(fibSource)

	first := "payload"
	second := "payload"

	byValue, err := enc.EncodeKey(fp, []Arg{{Name: "a1", Value: first}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byPointer, err := enc.EncodeKey(fp, []Arg{{Name: "a1", Value: &second}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(byValue, byPointer) {
		t.Error("expected a pointer argument to encode by pointee value")
	}
}

func TestKeyEncoder_Discriminates(t *testing.T) {
	enc := NewKeyEncoder()
	fp := FingerprintOf(fibSource)
	otherFp := FingerprintOf(fibSource + " // edited\nfunc extra() {}")

	base, err := enc.EncodeKey(fp, []Arg{{Name: "a1", Value: "x"}, {Name: "a2", Value: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		fp   Fingerprint
		args []Arg
	}{
		{
			name: "different value",
			fp:   fp,
			args: []Arg{{Name: "a1", Value: "x"}, {Name: "a2", Value: 2}},
		},
		{
			name: "swapped order",
			fp:   fp,
			args: []Arg{{Name: "a1", Value: 1}, {Name: "a2", Value: "x"}},
		},
		{
			name: "different fingerprint",
			fp:   otherFp,
			args: []Arg{{Name: "a1", Value: "x"}, {Name: "a2", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := enc.EncodeKey(tt.fp, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bytes.Equal(base, key) {
				t.Error("expected a distinct key")
			}
		})
	}
}

func TestKeyEncoder_NameNotPartOfKey(t *testing.T) {
	enc := NewKeyEncoder()
	fp := FingerprintOf(fibSource)

	a, err := enc.EncodeKey(fp, []Arg{{Name: "count", Value: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := enc.EncodeKey(fp, []Arg{{Name: "renamed", Value: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("expected keys to be positional; renaming a parameter must not invalidate entries")
	}
}

func TestKeyEncoder_UnencodableArgument(t *testing.T) {
	enc := NewKeyEncoder()

	_, err := enc.EncodeKey(FingerprintOf(fibSource), []Arg{{Name: "a1", Value: make(chan int)}})

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %v", err)
	}
	if encErr.Slot != "a1" {
		t.Errorf("expected error to name slot a1, got %q", encErr.Slot)
	}
}
