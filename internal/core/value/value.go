// Package value defines the hierarchical key/value model stored in case files.
package value

import (
	"iter"
	"slices"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
	KindList
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the values a case file can hold. The zero
// Value is the empty String.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bln  bool
	list []Value
	obj  *Object
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Int(i int64) Value     { return Value{kind: KindInt, num: i} }
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }
func Bool(b bool) Value     { return Value{kind: KindBool, bln: b} }
func Null() Value           { return Value{kind: KindNull} }
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// FromObject wraps an Object as a Value. A nil Object becomes an empty one.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload. Only meaningful for KindString.
func (v Value) Str() string { return v.str }

// IntValue returns the integer payload. Only meaningful for KindInt.
func (v Value) IntValue() int64 { return v.num }

// FloatValue returns the float payload. Only meaningful for KindFloat.
func (v Value) FloatValue() float64 { return v.flt }

// BoolValue returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.bln }

// Items returns the list elements. Only meaningful for KindList.
func (v Value) Items() []Value { return v.list }

// Object returns the object payload, or nil for non-object values.
func (v Value) Object() *Object { return v.obj }

// IsObject reports whether v holds an Object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// String returns the display text of v as produced by Encode.
func (v Value) String() string { return Encode(v) }

// Equal reports whether v and other hold the same variant and payload.
// Objects compare key order as well as contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	case KindBool:
		return v.bln == other.bln
	case KindNull:
		return true
	case KindList:
		return slices.EqualFunc(v.list, other.list, Value.Equal)
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

// Object is a mapping of keys to values that preserves insertion order.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores v under key. Setting an existing key replaces its value and
// keeps its original position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// All yields every key/value pair in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Equal reports whether o and other have the same keys in the same order
// with equal values.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o.Len() == 0 {
		return true
	}
	if !slices.Equal(o.keys, other.keys) {
		return false
	}
	for _, k := range o.keys {
		if !o.vals[k].Equal(other.vals[k]) {
			return false
		}
	}
	return true
}
