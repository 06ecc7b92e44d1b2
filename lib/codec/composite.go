package codec

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// --------------------------------------------------------------------------
// Pair
// --------------------------------------------------------------------------

// Pair is an ordered two-tuple, encoded as (first, second)
type Pair[F, S any] struct {
	First  F
	Second S
}

// MakePair returns Pair{first, second}
func MakePair[F, S any](first F, second S) Pair[F, S] {
	return Pair[F, S]{First: first, Second: second}
}

// PairOf returns the rule for a pair: the first component is decoded first
func PairOf[F, S any](first Rule[F], second Rule[S]) Rule[Pair[F, S]] {
	return pairRule[F, S]{first: first, second: second}
}

type pairRule[F, S any] struct {
	first  Rule[F]
	second Rule[S]
}

func (p pairRule[F, S]) Decode(r *Reader) (Pair[F, S], error) {
	var out Pair[F, S]
	var err error
	if out.First, err = p.first.Decode(r); err != nil {
		return out, errors.Wrap(err, "first of pair")
	}
	if out.Second, err = p.second.Decode(r); err != nil {
		return out, errors.Wrap(err, "second of pair")
	}
	return out, nil
}

func (p pairRule[F, S]) Encode(w *Writer, v Pair[F, S]) {
	w.WritePair(
		func() { p.first.Encode(w, v.First) },
		func() { p.second.Encode(w, v.Second) },
	)
}

// --------------------------------------------------------------------------
// Set
// --------------------------------------------------------------------------

// Set is a collection of unique keys, encoded in ascending order as {a, b}
type Set[K constraints.Ordered] map[K]struct{}

// NewSet creates a set containing keys
func NewSet[K constraints.Ordered](keys ...K) Set[K] {
	s := make(Set[K], len(keys))
	s.Insert(keys...)
	return s
}

// Insert adds keys to the set
func (s Set[K]) Insert(keys ...K) {
	for _, k := range keys {
		s[k] = struct{}{}
	}
}

// Contain reports whether all keys are in the set
func (s Set[K]) Contain(keys ...K) bool {
	for _, k := range keys {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}

// Remove deletes keys from the set
func (s Set[K]) Remove(keys ...K) {
	for _, k := range keys {
		delete(s, k)
	}
}

// Len returns the number of keys
func (s Set[K]) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending order
func (s Set[K]) Sorted() []K {
	keys := lo.Keys(map[K]struct{}(s))
	slices.Sort(keys)
	return keys
}

// SetOf returns the rule for a count-prefixed set. Duplicate keys in the input are absorbed.
func SetOf[K constraints.Ordered](key Rule[K]) Rule[Set[K]] {
	return setRule[K]{key: key}
}

type setRule[K constraints.Ordered] struct {
	key Rule[K]
}

func (s setRule[K]) Decode(r *Reader) (Set[K], error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	out := make(Set[K], min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		k, err := s.key.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d of %d", i+1, n)
		}
		out[k] = struct{}{}
	}
	return out, nil
}

func (s setRule[K]) Encode(w *Writer, v Set[K]) {
	keys := v.Sorted()
	w.WriteBraces(len(keys), func(i int) {
		s.key.Encode(w, keys[i])
	})
}

// --------------------------------------------------------------------------
// Map
// --------------------------------------------------------------------------

// MapOf returns the rule for a count-prefixed mapping of key/value entries.
// A key that appears twice keeps the value read last. Entries are written in
// ascending key order as {k1: v1, k2: v2}.
func MapOf[K constraints.Ordered, V any](key Rule[K], value Rule[V]) Rule[map[K]V] {
	return mapRule[K, V]{key: key, value: value}
}

type mapRule[K constraints.Ordered, V any] struct {
	key   Rule[K]
	value Rule[V]
}

func (m mapRule[K, V]) Decode(r *Reader) (map[K]V, error) {
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		k, err := m.key.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "key of entry %d of %d", i+1, n)
		}
		v, err := m.value.Decode(r)
		if err != nil {
			return nil, errors.Wrapf(err, "value of entry %d of %d", i+1, n)
		}
		out[k] = v
	}
	return out, nil
}

func (m mapRule[K, V]) Encode(w *Writer, v map[K]V) {
	keys := lo.Keys(v)
	slices.Sort(keys)
	w.WriteBraces(len(keys), func(i int) {
		m.key.Encode(w, keys[i])
		w.WriteString(": ")
		m.value.Encode(w, v[keys[i]])
	})
}
