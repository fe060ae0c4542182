package jay

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// Value Model
// ============================================================================

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindReal
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a JSON document tree: exactly one of null, bool, integer, real,
// string, array, or object. A Value is a pure tree - each node owns its
// children exclusively, with no sharing and no cycles. Values are built
// bottom-up by Decode or assembled whole through the constructors below, and
// are not meant to be mutated afterward. Treat the slices and maps returned
// by Array and Object as read-only.
type Value struct {
	kind Kind
	b    bool
	n    int64
	f    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// BoolOf returns a boolean value.
func BoolOf(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntOf returns an integer value.
func IntOf(n int64) Value {
	return Value{kind: KindInteger, n: n}
}

// RealOf returns a real (IEEE-754 double) value.
func RealOf(f float64) Value {
	return Value{kind: KindReal, f: f}
}

// StringOf returns a string value.
func StringOf(s string) Value {
	return Value{kind: KindString, s: s}
}

// ArrayOf returns an array value holding the given elements.
func ArrayOf(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// ObjectOf returns an object value holding the given members.
func ObjectOf(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, o: members}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload. It is false for any other kind.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the integer payload. It is zero for any other kind.
func (v Value) Int() int64 {
	return v.n
}

// Real returns the real payload. It is zero for any other kind.
func (v Value) Real() float64 {
	return v.f
}

// Str returns the string payload. It is empty for any other kind.
func (v Value) Str() string {
	return v.s
}

// Array returns the element slice of an array value, nil for any other kind.
func (v Value) Array() []Value {
	return v.a
}

// Object returns the member map of an object value, nil for any other kind.
func (v Value) Object() map[string]Value {
	return v.o
}

// Len returns the number of elements of an array or members of an object,
// and zero for scalar kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return len(v.o)
	default:
		return 0
	}
}

// Get returns the member of an object value by key. The second result
// reports whether the key was present; it is false for non-object values.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	member, ok := v.o[key]
	return member, ok
}

// Keys returns the object's keys in sorted order, nil for other kinds.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.o))
	for key := range v.o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ============================================================================
// Equality
// ============================================================================

// Equal reports structural equality: same kind, same payload, arrays equal
// elementwise in order, objects equal by key set and member values. Two NaN
// reals compare equal so that trees containing NaN are still comparable.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindInteger:
		return v.n == w.n
	case KindReal:
		if math.IsNaN(v.f) && math.IsNaN(w.f) {
			return true
		}
		return v.f == w.f
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.a) != len(w.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(w.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.o) != len(w.o) {
			return false
		}
		for key, member := range v.o {
			other, ok := w.o[key]
			if !ok || !member.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the compact encoding of the value, for debugging. Values
// that cannot be encoded (non-finite reals) render as "<" kind ">".
func (v Value) String() string {
	var out strings.Builder
	p := newPrinter(&out, DefaultConfig())
	if err := p.printValue(v, 0); err != nil {
		return "<" + v.kind.String() + ">"
	}
	if err := p.flush(); err != nil {
		return "<" + v.kind.String() + ">"
	}
	return out.String()
}

// ============================================================================
// Go Interop
// ============================================================================

// FromGo converts a generic Go value tree (the shape encoding/json produces:
// nil, bool, numbers, string, []any, map[string]any) into a Value. Values
// pass through unchanged. Any other type is an error.
func FromGo(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return BoolOf(t), nil
	case int:
		return IntOf(int64(t)), nil
	case int8:
		return IntOf(int64(t)), nil
	case int16:
		return IntOf(int64(t)), nil
	case int32:
		return IntOf(int64(t)), nil
	case int64:
		return IntOf(t), nil
	case uint:
		return intFromUint(uint64(t))
	case uint8:
		return IntOf(int64(t)), nil
	case uint16:
		return IntOf(int64(t)), nil
	case uint32:
		return IntOf(int64(t)), nil
	case uint64:
		return intFromUint(t)
	case float32:
		return RealOf(float64(t)), nil
	case float64:
		return RealOf(t), nil
	case string:
		return StringOf(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, el := range t {
			v, err := FromGo(el)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Value{kind: KindArray, a: elems}, nil
	case []Value:
		return ArrayOf(t...), nil
	case map[string]any:
		members := make(map[string]Value, len(t))
		for key, el := range t {
			v, err := FromGo(el)
			if err != nil {
				return Value{}, err
			}
			members[key] = v
		}
		return Value{kind: KindObject, o: members}, nil
	case map[string]Value:
		return ObjectOf(t), nil
	default:
		return Value{}, &PrintError{
			Kind:   PrintErrUnsupportedValue,
			Detail: fmt.Sprintf("%T", x),
		}
	}
}

// intFromUint converts an unsigned integer, saturating at the top of the
// signed range to match the decoder's saturating literal policy.
func intFromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return IntOf(math.MaxInt64), nil
	}
	return IntOf(int64(u)), nil
}

// Go converts the value into a generic Go tree: nil, bool, int64, float64,
// string, []any, or map[string]any.
func (v Value) Go() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.n
	case KindReal:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		elems := make([]any, len(v.a))
		for i, el := range v.a {
			elems[i] = el.Go()
		}
		return elems
	case KindObject:
		members := make(map[string]any, len(v.o))
		for key, member := range v.o {
			members[key] = member.Go()
		}
		return members
	default:
		return nil
	}
}
