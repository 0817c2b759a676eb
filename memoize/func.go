package memoize

import (
	"reflect"

	"github.com/andrewgazelka/smart-cache/cache"
)

// Func1 registers a one-argument pure function for memoization and returns
// the wrapped callable. fp identifies the implementation version; derive it
// with cache.FingerprintOf or supply a build-assigned digest.
//
// Registration validates the argument and result types once, before any call
// can reach the store: a mutable-alias parameter fails with a
// *cache.PurityError, an unencodable type with a *cache.EncodingError. A
// rejected registration returns no callable at all.
//
// The wrapped function is safe for concurrent and recursive use. Two
// concurrent callers with the same cold key may both compute; the duplicate
// write is idempotent, so the store converges on one consistent entry.
func Func1[I1, O any](e *Engine, fp cache.Fingerprint, fn func(I1) O) (func(I1) O, error) {
	if err := validateSignature(
		[]reflect.Type{reflect.TypeFor[I1]()},
		reflect.TypeFor[O](),
	); err != nil {
		return nil, err
	}
	return func(a1 I1) O {
		return call(e, fp, []cache.Arg{
			{Name: "a1", Value: a1},
		}, func() O { return fn(a1) })
	}, nil
}

// Func2 registers a two-argument pure function for memoization. See Func1
// for the registration and call contract.
func Func2[I1, I2, O any](e *Engine, fp cache.Fingerprint, fn func(I1, I2) O) (func(I1, I2) O, error) {
	if err := validateSignature(
		[]reflect.Type{reflect.TypeFor[I1](), reflect.TypeFor[I2]()},
		reflect.TypeFor[O](),
	); err != nil {
		return nil, err
	}
	return func(a1 I1, a2 I2) O {
		return call(e, fp, []cache.Arg{
			{Name: "a1", Value: a1},
			{Name: "a2", Value: a2},
		}, func() O { return fn(a1, a2) })
	}, nil
}

// Func3 registers a three-argument pure function for memoization. See Func1
// for the registration and call contract.
func Func3[I1, I2, I3, O any](e *Engine, fp cache.Fingerprint, fn func(I1, I2, I3) O) (func(I1, I2, I3) O, error) {
	if err := validateSignature(
		[]reflect.Type{reflect.TypeFor[I1](), reflect.TypeFor[I2](), reflect.TypeFor[I3]()},
		reflect.TypeFor[O](),
	); err != nil {
		return nil, err
	}
	return func(a1 I1, a2 I2, a3 I3) O {
		return call(e, fp, []cache.Arg{
			{Name: "a1", Value: a1},
			{Name: "a2", Value: a2},
			{Name: "a3", Value: a3},
		}, func() O { return fn(a1, a2, a3) })
	}, nil
}

// MustFunc1 is Func1 panicking on a rejected registration, for package-level
// variable declarations.
func MustFunc1[I1, O any](e *Engine, fp cache.Fingerprint, fn func(I1) O) func(I1) O {
	wrapped, err := Func1(e, fp, fn)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// MustFunc2 is Func2 panicking on a rejected registration.
func MustFunc2[I1, I2, O any](e *Engine, fp cache.Fingerprint, fn func(I1, I2) O) func(I1, I2) O {
	wrapped, err := Func2(e, fp, fn)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// MustFunc3 is Func3 panicking on a rejected registration.
func MustFunc3[I1, I2, I3, O any](e *Engine, fp cache.Fingerprint, fn func(I1, I2, I3) O) func(I1, I2, I3) O {
	wrapped, err := Func3(e, fp, fn)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// validateSignature runs the registration-time purity and encodability
// checks over the static type parameters. Slot names are positional, matching
// the arg names used at call time.
func validateSignature(args []reflect.Type, result reflect.Type) error {
	names := [...]string{"a1", "a2", "a3"}
	for i, t := range args {
		if err := cache.ValidateArgType(names[i], t); err != nil {
			return err
		}
	}
	return cache.ValidateResultType(result)
}
