package codec

// Rule is the decode/encode pair for one Go type. Rules are stateless and may be
// shared between goroutines; the Reader and Writer they operate on may not.
type Rule[T any] interface {
	// Decode consumes exactly the tokens of one value of type T from r.
	// Malformed or missing input is reported as a *DecodeError.
	Decode(r *Reader) (T, error)

	// Encode writes v to w in the writer's format. Encoding a well-formed value
	// never fails; I/O errors surface from w.Flush.
	Encode(w *Writer, v T)
}

// NewRule builds a Rule from a decode and an encode function. It is the
// shortest way to add a rule for a custom type, see Register.
func NewRule[T any](decode func(r *Reader) (T, error), encode func(w *Writer, v T)) Rule[T] {
	return funcRule[T]{decode: decode, encode: encode}
}

type funcRule[T any] struct {
	decode func(r *Reader) (T, error)
	encode func(w *Writer, v T)
}

func (f funcRule[T]) Decode(r *Reader) (T, error) { return f.decode(r) }
func (f funcRule[T]) Encode(w *Writer, v T)       { f.encode(w, v) }
