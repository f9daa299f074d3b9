package query

import "strings"

// Operator is a comparison operator that prefixes a field value.
type Operator string

// Supported comparison operators.
const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
)

// scanOrder lists two-character operators first so the longest literal wins.
var scanOrder = []Operator{OpNotEqual, OpLessEqual, OpGreaterEqual, OpLess, OpGreater, OpEqual}

// IsValid reports whether o is one of the six supported operators.
func (o Operator) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// Invert returns the logical complement of o (= and !=, < and >=, > and <=).
func (o Operator) Invert() Operator {
	switch o {
	case OpEqual:
		return OpNotEqual
	case OpNotEqual:
		return OpEqual
	case OpLess:
		return OpGreaterEqual
	case OpGreaterEqual:
		return OpLess
	case OpGreater:
		return OpLessEqual
	case OpLessEqual:
		return OpGreater
	}
	return o
}

func (o Operator) String() string { return string(o) }

// prefixOperator returns the longest operator literal that prefixes s.
func prefixOperator(s string) (Operator, bool) {
	for _, op := range scanOrder {
		if strings.HasPrefix(s, string(op)) {
			return op, true
		}
	}
	return "", false
}
