package codec

import (
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Char is a single character. It is a distinct type so that type-directed
// resolution can tell characters apart from int32 values.
type Char rune

// Built-in rules for the primitive types
var (
	Bool   Rule[bool]   = boolRule{}
	Rune   Rule[Char]   = CharOf[Char]()
	String Rule[string] = stringRule{}

	Int   = Signed[int]()
	Int8  = Signed[int8]()
	Int16 = Signed[int16]()
	Int32 = Signed[int32]()
	Int64 = Signed[int64]()

	Uint   = Unsigned[uint]()
	Uint8  = Unsigned[uint8]()
	Uint16 = Unsigned[uint16]()
	Uint32 = Unsigned[uint32]()
	Uint64 = Unsigned[uint64]()

	Float32 = Float[float32]()
	Float64 = Float[float64]()
)

// Signed returns the rule for any signed integer type, including named ones.
// Values that overflow T are rejected with ErrFormat.
func Signed[T constraints.Signed]() Rule[T] {
	return signedRule[T]{}
}

// Unsigned returns the rule for any unsigned integer type. Negative literals
// and overflow are rejected with ErrFormat.
func Unsigned[T constraints.Unsigned]() Rule[T] {
	return unsignedRule[T]{}
}

// CharOf returns the character rule for a named character type. A type
// declared as `type Letter codec.Char` only shares the underlying int32 with
// Char, so RuleFor treats it as an integer until CharOf[Letter]() is
// registered for it.
func CharOf[T ~int32]() Rule[T] {
	return charRule[T]{}
}

// Float returns the rule for float32, float64 or a named float type.
func Float[T constraints.Float]() Rule[T] {
	return floatRule[T]{}
}

// --------------------------------------------------------------------------
// Bool
// --------------------------------------------------------------------------

type boolRule struct{}

func (boolRule) Decode(r *Reader) (bool, error) {
	tok, pos, err := r.next("bool")
	if err != nil {
		return false, err
	}
	b, perr := strconv.ParseBool(tok)
	if perr != nil {
		return false, NewDecodeError(ErrFormat, pos, tok, "bool", numCause(perr))
	}
	return b, nil
}

func (boolRule) Encode(w *Writer, v bool) {
	if v {
		w.WriteString("True")
	} else {
		w.WriteString("False")
	}
}

// --------------------------------------------------------------------------
// Integers and floats
// --------------------------------------------------------------------------

type signedRule[T constraints.Signed] struct{}

func (signedRule[T]) Decode(r *Reader) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	tok, pos, err := r.next("integer")
	if err != nil {
		return zero, err
	}
	n, perr := strconv.ParseInt(tok, 10, bits)
	if perr != nil {
		return zero, NewDecodeError(ErrFormat, pos, tok, strconv.Itoa(bits)+"-bit integer", numCause(perr))
	}
	return T(n), nil
}

func (signedRule[T]) Encode(w *Writer, v T) {
	w.WriteString(strconv.FormatInt(int64(v), 10))
}

type unsignedRule[T constraints.Unsigned] struct{}

func (unsignedRule[T]) Decode(r *Reader) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	tok, pos, err := r.next("unsigned integer")
	if err != nil {
		return zero, err
	}
	n, perr := strconv.ParseUint(tok, 10, bits)
	if perr != nil {
		return zero, NewDecodeError(ErrFormat, pos, tok, strconv.Itoa(bits)+"-bit unsigned integer", numCause(perr))
	}
	return T(n), nil
}

func (unsignedRule[T]) Encode(w *Writer, v T) {
	w.WriteString(strconv.FormatUint(uint64(v), 10))
}

type floatRule[T constraints.Float] struct{}

func (floatRule[T]) Decode(r *Reader) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	tok, pos, err := r.next("float")
	if err != nil {
		return zero, err
	}
	f, perr := strconv.ParseFloat(tok, bits)
	if perr != nil {
		return zero, NewDecodeError(ErrFormat, pos, tok, "float", numCause(perr))
	}
	return T(f), nil
}

func (floatRule[T]) Encode(w *Writer, v T) {
	var zero T
	w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, int(unsafe.Sizeof(zero))*8))
}

// --------------------------------------------------------------------------
// Characters and strings
// --------------------------------------------------------------------------

type charRule[T ~int32] struct{}

// Decode takes one rune, not a whole token: "abc" decodes as 'a' and leaves "bc".
func (charRule[T]) Decode(r *Reader) (T, error) {
	c, _, err := r.nextRune("character")
	return T(c), err
}

func (charRule[T]) Encode(w *Writer, v T) {
	w.WriteQuoted(string(rune(v)))
}

type stringRule struct{}

// Decode reads the rest of the line after skipping leading whitespace, so a
// string may contain spaces but never a line break.
func (stringRule) Decode(r *Reader) (string, error) {
	s, _, err := r.nextLine("string")
	return s, err
}

func (stringRule) Encode(w *Writer, v string) {
	w.WriteQuoted(v)
}
