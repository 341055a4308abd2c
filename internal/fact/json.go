package fact

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// FromJSON decodes a JSON object into a fact set. Names declared in the
// vocabulary are checked against their declared kind; unknown names get a
// kind inferred from the JSON value. Arrays decode as ordered sequences.
func FromJSON(data []byte) (*Set, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding facts: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	b := NewBuilder()
	for _, name := range names {
		v, err := decodeValue(name, raw[name])
		if err != nil {
			return nil, err
		}
		b.Value(name, v)
	}
	return b.Build(), nil
}

func decodeValue(name string, raw json.RawMessage) (Value, error) {
	want, known := KnownKind(name)
	if !known {
		return inferValue(name, raw)
	}
	switch want {
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, fmt.Errorf("fact %q: expected bool: %w", name, err)
		}
		return BoolValue(b), nil
	case KindInt:
		n, err := decodeInt(name, raw)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("fact %q: expected string: %w", name, err)
		}
		return StringValue(s), nil
	case KindStringSet:
		items, err := decodeStrings(name, raw)
		if err != nil {
			return Value{}, err
		}
		return StringSetValue(items...), nil
	case KindStringSeq:
		items, err := decodeStrings(name, raw)
		if err != nil {
			return Value{}, err
		}
		return StringSeqValue(items...), nil
	}
	return Value{}, fmt.Errorf("fact %q: unsupported kind", name)
}

func inferValue(name string, raw json.RawMessage) (Value, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Value{}, fmt.Errorf("fact %q: %w", name, err)
	}
	switch probe.(type) {
	case bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, fmt.Errorf("fact %q: %w", name, err)
		}
		return BoolValue(b), nil
	case float64:
		n, err := decodeInt(name, raw)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case string:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("fact %q: %w", name, err)
		}
		return StringValue(s), nil
	case []any:
		items, err := decodeStrings(name, raw)
		if err != nil {
			return Value{}, err
		}
		return StringSeqValue(items...), nil
	}
	return Value{}, fmt.Errorf("fact %q: unsupported value %s", name, string(raw))
}

func decodeInt(name string, raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("fact %q: expected number: %w", name, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("fact %q: expected integer, got %v", name, f)
	}
	return int(f), nil
}

func decodeStrings(name string, raw json.RawMessage) ([]string, error) {
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("fact %q: expected array of strings: %w", name, err)
	}
	return items, nil
}

// UnmarshalJSON decodes into the set with the same vocabulary checks as
// FromJSON.
func (s *Set) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	s.values = parsed.values
	return nil
}

// MarshalJSON renders the set as a JSON object with deterministic member
// ordering for set-kinded facts.
func (s *Set) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.values))
	for name, v := range s.values {
		switch v.kind {
		case KindBool:
			out[name] = v.b
		case KindInt:
			out[name] = v.i
		case KindString:
			out[name] = v.s
		case KindStringSet:
			members, _ := s.Members(name)
			out[name] = members
		case KindStringSeq:
			out[name] = v.seq
		}
	}
	return json.Marshal(out)
}
