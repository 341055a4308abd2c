// Package fact holds the typed inputs a review evaluates rules against.
//
// A Set is immutable once built. Rules read facts through typed accessors;
// a missing fact or a kind mismatch reports absence instead of failing, so
// predicates stay total.
package fact

import (
	"sort"
)

// Kind identifies the type a fact value carries.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	KindStringSet
	KindStringSeq
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindStringSet:
		return "string-set"
	case KindStringSeq:
		return "string-seq"
	default:
		return "unknown"
	}
}

// Value is one typed fact value. The zero Value is a false bool.
type Value struct {
	kind Kind
	b    bool
	i    int
	s    string
	set  map[string]struct{}
	seq  []string
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// BoolValue wraps a boolean fact.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue wraps a numeric fact.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// StringValue wraps a string fact.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// StringSetValue wraps an unordered membership fact. Duplicates collapse.
func StringSetValue(members ...string) Value {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return Value{kind: KindStringSet, set: set}
}

// StringSeqValue wraps an ordered list fact. The input is copied.
func StringSeqValue(items ...string) Value {
	seq := make([]string, len(items))
	copy(seq, items)
	return Value{kind: KindStringSeq, seq: seq}
}

// Set is an immutable collection of named facts describing one unit of
// review, typically a single source file.
type Set struct {
	values map[string]Value
}

// Empty returns a set with no facts.
func Empty() *Set {
	return &Set{values: map[string]Value{}}
}

// Len returns the number of facts in the set.
func (s *Set) Len() int { return len(s.values) }

// Has reports whether a fact with the given name exists, regardless of kind.
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// KindOf returns the kind of the named fact.
func (s *Set) KindOf(name string) (Kind, bool) {
	v, ok := s.values[name]
	if !ok {
		return 0, false
	}
	return v.kind, true
}

// Bool returns a boolean fact. Absent or differently-kinded facts report
// (false, false).
func (s *Set) Bool(name string) (bool, bool) {
	v, ok := s.values[name]
	if !ok || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int returns a numeric fact.
func (s *Set) Int(name string) (int, bool) {
	v, ok := s.values[name]
	if !ok || v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// String returns a string fact.
func (s *Set) String(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Contains reports whether member belongs to the named string-set fact.
func (s *Set) Contains(name, member string) bool {
	v, ok := s.values[name]
	if !ok || v.kind != KindStringSet {
		return false
	}
	_, in := v.set[member]
	return in
}

// Members returns the members of a string-set fact in sorted order.
func (s *Set) Members(name string) ([]string, bool) {
	v, ok := s.values[name]
	if !ok || v.kind != KindStringSet {
		return nil, false
	}
	members := make([]string, 0, len(v.set))
	for m := range v.set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members, true
}

// Seq returns an ordered list fact. The returned slice is a copy.
func (s *Set) Seq(name string) ([]string, bool) {
	v, ok := s.values[name]
	if !ok || v.kind != KindStringSeq {
		return nil, false
	}
	out := make([]string, len(v.seq))
	copy(out, v.seq)
	return out, true
}

// Names returns all fact names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of the set with one fact replaced or added. The
// receiver is not modified.
func (s *Set) With(name string, v Value) *Set {
	values := make(map[string]Value, len(s.values)+1)
	for n, val := range s.values {
		values[n] = val
	}
	values[name] = v
	return &Set{values: values}
}

// Builder accumulates facts and freezes them into a Set. Setting the same
// name twice keeps the latest value. Builders are not safe for concurrent
// use; Sets are.
type Builder struct {
	values map[string]Value
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{values: map[string]Value{}}
}

// Bool records a boolean fact.
func (b *Builder) Bool(name string, v bool) *Builder {
	b.values[name] = BoolValue(v)
	return b
}

// Int records a numeric fact.
func (b *Builder) Int(name string, v int) *Builder {
	b.values[name] = IntValue(v)
	return b
}

// String records a string fact.
func (b *Builder) String(name, v string) *Builder {
	b.values[name] = StringValue(v)
	return b
}

// StringSet records an unordered membership fact.
func (b *Builder) StringSet(name string, members ...string) *Builder {
	b.values[name] = StringSetValue(members...)
	return b
}

// StringSeq records an ordered list fact.
func (b *Builder) StringSeq(name string, items ...string) *Builder {
	b.values[name] = StringSeqValue(items...)
	return b
}

// Value records an already-wrapped fact value.
func (b *Builder) Value(name string, v Value) *Builder {
	b.values[name] = v
	return b
}

// Build freezes the accumulated facts. The builder can keep being used
// afterwards without affecting the returned set.
func (b *Builder) Build() *Set {
	values := make(map[string]Value, len(b.values))
	for name, v := range b.values {
		values[name] = v
	}
	return &Set{values: values}
}
