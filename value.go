package treedoc

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a node in an untyped data tree: null, bool, number, string,
// sequence, or mapping. The zero Value is null. Containers are held by
// reference, so a tree may legally contain cycles; [Convert] detects and
// renders them as circular-reference markers rather than recursing forever.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	seq  *Sequence
	m    *Mapping
}

// Null returns the null value. Equivalent to the zero Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload. Valid only for KindNumber.
func (v Value) Number() float64 { return v.num }

// Text returns the string payload. Valid only for KindString.
func (v Value) Text() string { return v.str }

// Sequence returns the sequence payload, or nil for other kinds.
func (v Value) Sequence() *Sequence { return v.seq }

// Mapping returns the mapping payload, or nil for other kinds.
func (v Value) Mapping() *Mapping { return v.m }

// Sequence is an ordered list of values. Its identity (the pointer) is what
// cycle detection keys on.
type Sequence struct {
	items []Value
}

// NewSequence returns a sequence holding the given items.
func NewSequence(items ...Value) *Sequence {
	return &Sequence{items: items}
}

// Value wraps the sequence as a [Value].
func (s *Sequence) Value() Value { return Value{kind: KindSequence, seq: s} }

// Append adds items to the end of the sequence.
func (s *Sequence) Append(items ...Value) { s.items = append(s.items, items...) }

// Len returns the number of items.
func (s *Sequence) Len() int { return len(s.items) }

// At returns the item at index i.
func (s *Sequence) At(i int) Value { return s.items[i] }

// Mapping is an insertion-ordered collection of unique string keys to values.
// Its identity (the pointer) is what cycle detection keys on.
type Mapping struct {
	keys []string
	vals map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: make(map[string]Value)}
}

// Value wraps the mapping as a [Value].
func (m *Mapping) Value() Value { return Value{kind: KindMapping, m: m} }

// Set stores key=v, preserving the key's original position when it already
// exists.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value for key and whether it is present.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The slice is shared; do not
// modify it.
func (m *Mapping) Keys() []string { return m.keys }

// FromAny normalizes a Go value into a [Value]. Supported inputs are nil,
// booleans, all integer and float kinds, strings, []any, map[string]any
// (keys are sorted, since Go map iteration order is unspecified), and values
// already in the treedoc model. Anything else is rendered with %v, the same
// fallback the Plain format uses for unknown types.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Sequence:
		return x.Value()
	case *Mapping:
		return x.Value()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case []any:
		seq := NewSequence()
		for _, item := range x {
			seq.Append(FromAny(item))
		}
		return seq.Value()
	case []Value:
		return NewSequence(x...).Value()
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(x[k]))
		}
		return m.Value()
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// formatNumber renders a float the shortest way that round-trips, so integral
// values print without a trailing ".0".
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
