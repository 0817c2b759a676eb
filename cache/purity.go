package cache

import (
	"fmt"
	"reflect"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ValidateArgType checks, at registration time, that a parameter type can be
// canonically encoded and carries no mutable-alias state. slot names the
// argument position for error messages.
//
// Rejected with *PurityError: channels, functions, and unsafe pointers at
// any depth. A channel or closure reachable from a parameter behaves like a
// mutable alias -- the value the key describes can change between key
// construction and recomputation -- so no registration containing one may
// ever reach the orchestrator. Plain pointers, slices, and maps are allowed;
// they encode by content, the same way the engine treats any reference.
//
// Rejected with *EncodingError: types the canonical encoding cannot carry
// faithfully. Complex numbers and bare interfaces have no canonical shape.
// Maps with non-string keys have no canonical ordering, so equal values
// could encode to different bytes. Structs with unexported fields encode
// lossily -- the encoder cannot see those fields, so two logically different
// values would collide onto one key; structs that carry their own msgpack
// encoding (time.Time, msgpack.CustomEncoder, msgpack.Marshaler) are exempt
// because their encoding covers the hidden state.
func ValidateArgType(slot string, t reflect.Type) error {
	return validateType(slot, t, t, nil)
}

// ValidateResultType checks that a return type can round-trip through the
// canonical encoding. The same structural rules apply: a result holding a
// channel or closure could not be materialized from stored bytes.
func ValidateResultType(t reflect.Type) error {
	return validateType("result", t, t, nil)
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	customEncoderType = reflect.TypeOf((*msgpack.CustomEncoder)(nil)).Elem()
	marshalerType     = reflect.TypeOf((*msgpack.Marshaler)(nil)).Elem()
)

func validateType(slot string, root, t reflect.Type, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}

	switch t.Kind() {
	case reflect.Chan:
		return &PurityError{Slot: slot, Type: root.String(), Reason: "contains channel " + t.String()}
	case reflect.Func:
		return &PurityError{Slot: slot, Type: root.String(), Reason: "contains function " + t.String()}
	case reflect.UnsafePointer:
		return &PurityError{Slot: slot, Type: root.String(), Reason: "contains unsafe.Pointer"}
	case reflect.Complex64, reflect.Complex128:
		return &EncodingError{Slot: slot, Type: root.String(),
			Cause: fmt.Errorf("%s has no canonical encoding", t.String())}
	case reflect.Interface:
		return &EncodingError{Slot: slot, Type: root.String(),
			Cause: fmt.Errorf("interface %s has no canonical shape", t.String())}

	case reflect.Pointer, reflect.Slice, reflect.Array:
		return validateType(slot, root, t.Elem(), mark(seen, t))

	case reflect.Map:
		// The canonical encoder sorts map entries for string keys only;
		// any other key kind would serialize in iteration order and
		// break key determinism.
		if t.Key().Kind() != reflect.String {
			return &EncodingError{Slot: slot, Type: root.String(),
				Cause: fmt.Errorf("map key %s has no canonical ordering", t.Key().String())}
		}
		seen = mark(seen, t)
		if err := validateType(slot, root, t.Key(), seen); err != nil {
			return err
		}
		return validateType(slot, root, t.Elem(), seen)

	case reflect.Struct:
		if hasOwnEncoding(t) {
			return nil
		}
		seen = mark(seen, t)
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				return &EncodingError{Slot: slot, Type: root.String(),
					Cause: fmt.Errorf("unexported field %s.%s is invisible to the canonical encoding",
						t.String(), field.Name)}
			}
			if err := validateType(slot, root, field.Type, seen); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// hasOwnEncoding reports whether the struct type supplies its own complete
// msgpack encoding, making its unexported fields representable.
func hasOwnEncoding(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	ptr := reflect.PointerTo(t)
	return t.Implements(customEncoderType) || ptr.Implements(customEncoderType) ||
		t.Implements(marshalerType) || ptr.Implements(marshalerType)
}

// mark records t as visited, allocating the set on first use so the common
// flat-type case stays allocation free.
func mark(seen map[reflect.Type]bool, t reflect.Type) map[reflect.Type]bool {
	if seen == nil {
		seen = make(map[reflect.Type]bool)
	}
	seen[t] = true
	return seen
}
