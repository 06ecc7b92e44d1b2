package codec

import (
	"github.com/cockroachdb/errors"
)

// maxPrealloc caps the capacity reserved up front from an untrusted count
const maxPrealloc = 1024

// SliceOf returns the rule for a count-prefixed sequence of elements decoded with elem.
// Sequences nest: SliceOf(SliceOf(Int)) reads a count per inner sequence.
func SliceOf[E any](elem Rule[E]) Rule[[]E] {
	return sliceRule[E]{elem: elem}
}

type sliceRule[E any] struct {
	elem Rule[E]
}

// Decode returns a non-nil slice, also for a count of zero
func (s sliceRule[E]) Decode(r *Reader) ([]E, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	out := make([]E, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := s.elem.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d of %d", i+1, n)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s sliceRule[E]) Encode(w *Writer, v []E) {
	w.WriteSequence(len(v), func(i int) {
		s.elem.Encode(w, v[i])
	})
}
