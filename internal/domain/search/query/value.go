package query

import (
	"strconv"
	"time"
)

// Kind is the semantic type carried by a Value.
type Kind int

const (
	// KindText is free text, identifiers and URLs.
	KindText Kind = iota
	// KindInt is a signed integer.
	KindInt
	// KindTime is a timestamp.
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Value is a coerced token value.
type Value struct {
	kind   Kind
	text   string
	number int64
	at     time.Time
}

// TextValue creates a text value.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// IntValue creates an integer value.
func IntValue(n int64) Value { return Value{kind: KindInt, number: n} }

// TimeValue creates a timestamp value.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, at: t} }

// Kind returns the semantic type.
func (v Value) Kind() Kind { return v.kind }

// Text returns the text payload (empty for non-text values).
func (v Value) Text() string { return v.text }

// Int returns the integer payload.
func (v Value) Int() int64 { return v.number }

// Time returns the timestamp payload.
func (v Value) Time() time.Time { return v.at }

// Any returns the payload as int64, time.Time or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.number
	case KindTime:
		return v.at
	default:
		return v.text
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.number, 10)
	case KindTime:
		return v.at.Format(time.RFC3339Nano)
	default:
		return v.text
	}
}

// Equal reports whether two values carry the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.number == o.number
	case KindTime:
		return v.at.Equal(o.at)
	default:
		return v.text == o.text
	}
}
