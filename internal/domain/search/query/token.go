package query

import "strings"

// Token is a parsed query unit: a field comparison or a free word.
type Token struct {
	field    Field
	operator Operator
	value    Value
	negated  bool
}

// NewFieldToken creates a field comparison token.
func NewFieldToken(f Field, op Operator, v Value, negated bool) Token {
	return Token{field: f, operator: op, value: v, negated: negated}
}

// NewFreeToken creates a bare-word token matched against tag and artist names.
func NewFreeToken(word string, negated bool) Token {
	return Token{field: FieldNone, value: TextValue(word), negated: negated}
}

// Field returns the compared field (FieldNone for free tokens).
func (t Token) Field() Field { return t.field }

// Operator returns the comparison operator as written in the query.
func (t Token) Operator() Operator { return t.operator }

// Value returns the coerced value.
func (t Token) Value() Value { return t.value }

// Negated reports whether the token carried a leading '-'.
func (t Token) Negated() bool { return t.negated }

// IsFree reports whether the token has no field prefix.
func (t Token) IsFree() bool { return t.field == FieldNone }

func (t Token) String() string {
	var b strings.Builder
	if t.negated {
		b.WriteByte('-')
	}
	if t.IsFree() {
		b.WriteString(t.value.Text())
		return b.String()
	}
	b.WriteString(t.field.String())
	b.WriteByte(':')
	b.WriteString(string(t.operator))
	b.WriteString(t.value.String())
	return b.String()
}
