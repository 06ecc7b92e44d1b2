package codec

import (
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
)

// typedRule lifts a Rule[T] into a valueRule
type typedRule[T any] struct {
	rule Rule[T]
}

func (t typedRule[T]) decodeValue(r *Reader) (reflect.Value, error) {
	v, err := t.rule.Decode(r)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&v).Elem(), nil
}

func (t typedRule[T]) encodeValue(w *Writer, v reflect.Value) {
	t.rule.Encode(w, v.Interface().(T))
}

// derivedRule exposes a reflection based valueRule as a Rule[T]
type derivedRule[T any] struct {
	vr valueRule
}

func (d derivedRule[T]) Decode(r *Reader) (T, error) {
	v, err := d.vr.decodeValue(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.Interface().(T), nil
}

func (d derivedRule[T]) Encode(w *Writer, v T) {
	d.vr.encodeValue(w, reflect.ValueOf(&v).Elem())
}

// convertRule handles named types over primitives through the rule of the underlying type
type convertRule struct {
	typ  reflect.Type
	base valueRule
}

func (c convertRule) decodeValue(r *Reader) (reflect.Value, error) {
	v, err := c.base.decodeValue(r)
	if err != nil {
		return reflect.Value{}, err
	}
	return v.Convert(c.typ), nil
}

func (c convertRule) encodeValue(w *Writer, v reflect.Value) {
	c.base.encodeValue(w, v.Convert(basicTypes[c.typ.Kind()]))
}

type reflectSlice struct {
	typ  reflect.Type
	elem valueRule
}

func (s reflectSlice) decodeValue(r *Reader) (reflect.Value, error) {
	n, err := r.Count()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeSlice(s.typ, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := s.elem.decodeValue(r)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "element %d of %d", i+1, n)
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func (s reflectSlice) encodeValue(w *Writer, v reflect.Value) {
	w.WriteSequence(v.Len(), func(i int) {
		s.elem.encodeValue(w, v.Index(i))
	})
}

type reflectMap struct {
	typ   reflect.Type
	key   valueRule
	value valueRule
}

func (m reflectMap) decodeValue(r *Reader) (reflect.Value, error) {
	n, err := r.Count()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeMapWithSize(m.typ, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		k, err := m.key.decodeValue(r)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "key of entry %d of %d", i+1, n)
		}
		v, err := m.value.decodeValue(r)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "value of entry %d of %d", i+1, n)
		}
		out.SetMapIndex(k, v)
	}
	return out, nil
}

func (m reflectMap) encodeValue(w *Writer, v reflect.Value) {
	keys := sortedKeys(v)
	w.WriteBraces(len(keys), func(i int) {
		m.key.encodeValue(w, keys[i])
		w.WriteString(": ")
		m.value.encodeValue(w, v.MapIndex(keys[i]))
	})
}

// reflectSet handles map[K]struct{} types that are not a Set
type reflectSet struct {
	typ reflect.Type
	key valueRule
}

func (s reflectSet) decodeValue(r *Reader) (reflect.Value, error) {
	n, err := r.Count()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeMapWithSize(s.typ, min(n, maxPrealloc))
	present := reflect.Zero(s.typ.Elem())
	for i := 0; i < n; i++ {
		k, err := s.key.decodeValue(r)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "key %d of %d", i+1, n)
		}
		out.SetMapIndex(k, present)
	}
	return out, nil
}

func (s reflectSet) encodeValue(w *Writer, v reflect.Value) {
	keys := sortedKeys(v)
	w.WriteBraces(len(keys), func(i int) {
		s.key.encodeValue(w, keys[i])
	})
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return lessValue(keys[i], keys[j])
	})
	return keys
}
