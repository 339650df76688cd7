// Package jsobj recovers JavaScript object literals embedded in HTML pages
// and parses them into a generic, order-preserving value tree.
package jsobj

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a parsed object tree. Objects keep their keys in
// source order; a repeated key keeps its first position and its last value.
//
// Accessors are nil-safe: calling them on a nil *Value reports absence,
// which lets lookups be chained without intermediate checks.
type Value struct {
	kind   Kind
	b      bool
	num    json.Number
	str    string
	items  []*Value
	keys   []string
	fields map[string]*Value
}

// NullValue returns a null Value.
func NullValue() *Value { return &Value{kind: Null} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) *Value { return &Value{kind: Bool, b: b} }

// NumberValue returns a numeric Value holding the literal n.
func NumberValue(n json.Number) *Value { return &Value{kind: Number, num: n} }

// StringValue returns a string Value.
func StringValue(s string) *Value { return &Value{kind: String, str: s} }

// NewObject returns an empty object Value.
func NewObject() *Value {
	return &Value{kind: Object, fields: make(map[string]*Value)}
}

// Set assigns a field on an object Value. New keys are appended to the key order.
func (v *Value) Set(key string, val *Value) *Value {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
	return v
}

// Kind returns the variant of v. A nil Value reports Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsObject reports whether v is an object.
func (v *Value) IsObject() bool { return v.Kind() == Object }

// Field returns the named field of an object, or nil if v is not an object
// or has no such field.
func (v *Value) Field(name string) *Value {
	if v.Kind() != Object {
		return nil
	}
	return v.fields[name]
}

// Has reports whether v is an object containing the named field.
func (v *Value) Has(name string) bool {
	if v.Kind() != Object {
		return false
	}
	_, ok := v.fields[name]
	return ok
}

// Path follows a chain of object fields and returns the terminal value,
// or nil if any step is missing.
func (v *Value) Path(names ...string) *Value {
	cur := v
	for _, name := range names {
		cur = cur.Field(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Keys returns the object keys in source order.
func (v *Value) Keys() []string {
	if v.Kind() != Object {
		return nil
	}
	return v.keys
}

// Index returns the i-th element of an array, or nil if v is not an array
// or i is out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != Array || i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Items returns the elements of an array in order.
func (v *Value) Items() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.items
}

// Len returns the number of elements of an array or fields of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.items)
	case Object:
		return len(v.keys)
	default:
		return 0
	}
}

// Str returns the string held by v.
func (v *Value) Str() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	return v.str, true
}

// Text returns the string held by v, or "" for any other kind.
func (v *Value) Text() string {
	s, _ := v.Str()
	return s
}

// Number returns the numeric literal held by v.
func (v *Value) Number() (json.Number, bool) {
	if v.Kind() != Number {
		return "", false
	}
	return v.num, true
}

// Int64 returns v as an integer. Fractional numbers are truncated.
func (v *Value) Int64() (int64, bool) {
	n, ok := v.Number()
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// Truthy reports whether v would count as a present value in a fallback
// chain: non-null, and not an empty string, zero number, false, or an empty
// container.
func (v *Value) Truthy() bool {
	switch v.Kind() {
	case Bool:
		return v.b
	case Number:
		f, err := v.num.Float64()
		return err == nil && f != 0
	case String:
		return v.str != ""
	case Array:
		return len(v.items) > 0
	case Object:
		return len(v.keys) > 0
	default:
		return false
	}
}

// MarshalJSON encodes v back to JSON, preserving object key order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf []byte
	return v.appendJSON(buf)
}

func (v *Value) appendJSON(buf []byte) ([]byte, error) {
	switch v.Kind() {
	case Null:
		return append(buf, "null"...), nil
	case Bool:
		return strconv.AppendBool(buf, v.b), nil
	case Number:
		return append(buf, v.num...), nil
	case String:
		b, err := json.Marshal(v.str)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil
	case Array:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = item.appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	default:
		buf = append(buf, '{')
		for i, key := range v.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			k, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf = append(buf, k...)
			buf = append(buf, ':')
			if buf, err = v.fields[key].appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	}
}
