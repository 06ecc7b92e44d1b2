package codec

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// valueRule is the type-erased form of a rule used while resolving nested types
type valueRule interface {
	decodeValue(r *Reader) (reflect.Value, error)
	encodeValue(w *Writer, v reflect.Value)
}

// deriver is implemented by generic codec types (Pair, Set) that can build
// their own rule from their type arguments
type deriver interface {
	deriveRule(res *resolver) (valueRule, error)
}

var deriverType = reflect.TypeFor[deriver]()

var (
	// registry holds the rules for exact types, built-in and registered
	registry = xsync.NewMapOf[reflect.Type, valueRule]()
	// resolved caches rules derived by reflection
	resolved = xsync.NewMapOf[reflect.Type, valueRule]()
)

func init() {
	register(Bool)
	register(Rune)
	register(String)
	register(Int)
	register(Int8)
	register(Int16)
	register(Int32)
	register(Int64)
	register(Uint)
	register(Uint8)
	register(Uint16)
	register(Uint32)
	register(Uint64)
	register(Float32)
	register(Float64)
	register(List)
	register(Tree)
}

// Register makes rule the rule RuleFor returns for T, and for every type
// that contains T. Registering replaces a previous rule for the same type.
// Registration is meant to happen during program initialization.
func Register[T any](rule Rule[T]) {
	register(rule)
	resolved.Clear()
}

func register[T any](rule Rule[T]) {
	registry.Store(reflect.TypeFor[T](), typedRule[T]{rule: rule})
}

// RuleFor returns the rule for T. Supported are all primitive types (also
// named ones), Char, slices, Pair, Set, maps with ordered keys, *ListNode,
// *TreeNode and every registered type, nested to any depth. The rule is
// derived once and cached. Other types, and types that contain themselves
// like `type Nested []Nested`, fail with ErrUnsupportedType.
//
// Named types over a primitive use the rule of the underlying Go type, so
// `type Letter codec.Char` is an int32. Register CharOf[Letter]() to read
// and write it as a character.
func RuleFor[T any]() (Rule[T], error) {
	return resolveRule[T](newResolver())
}

// MustRuleFor is like RuleFor but panics if T is unsupported
func MustRuleFor[T any]() Rule[T] {
	rule, err := RuleFor[T]()
	if err != nil {
		panic(err)
	}
	return rule
}

// Decode reads one value of type T from r using the rule for T
func Decode[T any](r *Reader) (T, error) {
	rule, err := RuleFor[T]()
	if err != nil {
		var zero T
		return zero, err
	}
	return rule.Decode(r)
}

// Encode writes v to w using the rule for T
func Encode[T any](w *Writer, v T) error {
	rule, err := RuleFor[T]()
	if err != nil {
		return err
	}
	rule.Encode(w, v)
	return nil
}

// --------------------------------------------------------------------------
// Resolution
// --------------------------------------------------------------------------

// resolver derives the rules for one RuleFor call. It tracks the types that
// are being derived to detect types that contain themselves.
type resolver struct {
	visiting map[reflect.Type]bool
}

func newResolver() *resolver {
	return &resolver{visiting: make(map[reflect.Type]bool)}
}

// resolveRule resolves the rule for T within res
func resolveRule[T any](res *resolver) (Rule[T], error) {
	vr, err := res.resolve(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	if tr, ok := vr.(typedRule[T]); ok {
		return tr.rule, nil
	}
	return derivedRule[T]{vr: vr}, nil
}

func (res *resolver) resolve(typ reflect.Type) (valueRule, error) {
	if vr, ok := registry.Load(typ); ok {
		return vr, nil
	}
	if vr, ok := resolved.Load(typ); ok {
		return vr, nil
	}
	if res.visiting[typ] {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s contains itself", typ)
	}
	res.visiting[typ] = true
	defer delete(res.visiting, typ)

	vr, err := res.derive(typ)
	if err != nil {
		return nil, err
	}
	resolved.Store(typ, vr)
	return vr, nil
}

func (res *resolver) derive(typ reflect.Type) (valueRule, error) {
	if typ.Implements(deriverType) {
		return reflect.Zero(typ).Interface().(deriver).deriveRule(res)
	}

	switch typ.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// named type over a primitive, e.g. type ID int
		base, ok := registry.Load(basicTypes[typ.Kind()])
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedType, "%s", typ)
		}
		return convertRule{typ: typ, base: base}, nil

	case reflect.Slice:
		elem, err := res.resolve(typ.Elem())
		if err != nil {
			return nil, errors.Wrapf(err, "element of %s", typ)
		}
		return reflectSlice{typ: typ, elem: elem}, nil

	case reflect.Map:
		if !orderedKind(typ.Key().Kind()) {
			return nil, errors.Wrapf(ErrUnsupportedType, "%s: keys must be ordered", typ)
		}
		key, err := res.resolve(typ.Key())
		if err != nil {
			return nil, errors.Wrapf(err, "key of %s", typ)
		}
		if typ.Elem().Kind() == reflect.Struct && typ.Elem().NumField() == 0 {
			return reflectSet{typ: typ, key: key}, nil
		}
		value, err := res.resolve(typ.Elem())
		if err != nil {
			return nil, errors.Wrapf(err, "value of %s", typ)
		}
		return reflectMap{typ: typ, key: key, value: value}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%s", typ)
}

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.String:  reflect.TypeFor[string](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
}

func orderedKind(k reflect.Kind) bool {
	return k != reflect.Bool && basicTypes[k] != nil
}

// lessValue orders two values of the same ordered kind
func lessValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	default:
		return a.String() < b.String()
	}
}

// --------------------------------------------------------------------------
// Generic types
// --------------------------------------------------------------------------

func (Pair[F, S]) deriveRule(res *resolver) (valueRule, error) {
	first, err := resolveRule[F](res)
	if err != nil {
		return nil, errors.Wrap(err, "first of pair")
	}
	second, err := resolveRule[S](res)
	if err != nil {
		return nil, errors.Wrap(err, "second of pair")
	}
	return typedRule[Pair[F, S]]{rule: PairOf(first, second)}, nil
}

func (Set[K]) deriveRule(res *resolver) (valueRule, error) {
	key, err := resolveRule[K](res)
	if err != nil {
		return nil, errors.Wrap(err, "key of set")
	}
	return typedRule[Set[K]]{rule: SetOf(key)}, nil
}
