// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of value a setting holds.
type Kind string

const (
	// KindBool is a boolean toggle
	KindBool Kind = "bool"
	// KindInt is a bounded integer
	KindInt Kind = "int"
	// KindString is free text
	KindString Kind = "string"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBool, KindInt, KindString:
		return true
	default:
		return false
	}
}

// Value is a tagged setting value. Exactly one payload is meaningful,
// selected by Kind. The zero Value has no kind and is invalid.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns an integer Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero reports whether v carries no value at all.
func (v Value) IsZero() bool {
	return v.kind == ""
}

// AsBool returns the boolean payload, or false for other kinds.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.b
}

// AsInt returns the integer payload, or 0 for other kinds.
func (v Value) AsInt() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// AsString returns the string payload, or "" for other kinds.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Interface returns the payload as a plain Go value (bool, int64 or string).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindString:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	default:
		return "<unset>"
	}
}

// ValueOf converts a decoded scalar into a Value. It accepts the types produced by
// YAML and database decoders; floats are accepted only when they are integral.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return IntValue(int64(t)), nil
	case float64:
		if t != math.Trunc(t) || t >= math.MaxInt64 || t < math.MinInt64 {
			return Value{}, fmt.Errorf("number %v is not an integer", t)
		}
		return IntValue(int64(t)), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// ParseValue parses text as a value of the given kind. It exists for textual
// front ends; the engine itself never converts between kinds.
func ParseValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean value %q (valid values: true, false)", text)
		}
		return BoolValue(b), nil
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer value %q", text)
		}
		return IntValue(i), nil
	case KindString:
		return StringValue(text), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %q", kind)
	}
}
