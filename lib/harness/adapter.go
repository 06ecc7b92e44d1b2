package harness

import (
	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/cockroachdb/errors"
)

// --------------------------------------------------------------------------
// Typed adapters
//
// The adapters resolve the rules for their argument and result types once,
// when the adapter is created. An unsupported type is a programming error and
// panics, the same way a bad regexp.MustCompile does at init time.
// --------------------------------------------------------------------------

// Func1 adapts fn(a) r: it reads one A and writes the result
func Func1[A, R any](fn func(A) R) Solution {
	argA := codec.MustRuleFor[A]()
	result := codec.MustRuleFor[R]()

	return adapted{params: 1, solve: func(r *codec.Reader, w *codec.Writer) error {
		a, err := argA.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 1")
		}
		result.Encode(w, fn(a))
		return nil
	}}
}

// Func2 adapts fn(a, b) r: the arguments are read in order
func Func2[A, B, R any](fn func(A, B) R) Solution {
	argA := codec.MustRuleFor[A]()
	argB := codec.MustRuleFor[B]()
	result := codec.MustRuleFor[R]()

	return adapted{params: 2, solve: func(r *codec.Reader, w *codec.Writer) error {
		a, err := argA.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 1")
		}
		b, err := argB.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 2")
		}
		result.Encode(w, fn(a, b))
		return nil
	}}
}

// Func3 adapts fn(a, b, c) r: the arguments are read in order
func Func3[A, B, C, R any](fn func(A, B, C) R) Solution {
	argA := codec.MustRuleFor[A]()
	argB := codec.MustRuleFor[B]()
	argC := codec.MustRuleFor[C]()
	result := codec.MustRuleFor[R]()

	return adapted{params: 3, solve: func(r *codec.Reader, w *codec.Writer) error {
		a, err := argA.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 1")
		}
		b, err := argB.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 2")
		}
		c, err := argC.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 3")
		}
		result.Encode(w, fn(a, b, c))
		return nil
	}}
}

// Proc1 adapts a procedure that modifies its argument in place, like
// reversing a slice. The argument is written after fn returns.
func Proc1[A any](fn func(A)) Solution {
	argA := codec.MustRuleFor[A]()

	return adapted{params: 1, solve: func(r *codec.Reader, w *codec.Writer) error {
		a, err := argA.Decode(r)
		if err != nil {
			return errors.Wrap(err, "argument 1")
		}
		fn(a)
		argA.Encode(w, a)
		return nil
	}}
}
