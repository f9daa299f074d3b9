// Package filter compiles query tokens into a structured post filter.
package filter

import (
	"strings"

	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

// ClauseKind identifies what a clause matches against.
type ClauseKind int

// Clause kinds.
const (
	// ClauseCompare compares a post column with a typed value.
	ClauseCompare ClauseKind = iota
	// ClauseAuthorID matches the uploader by identifier.
	ClauseAuthorID
	// ClauseAuthorName matches the uploader by exact username.
	ClauseAuthorName
	// ClauseTagOrArtistName matches posts having a tag or an artist with the name.
	ClauseTagOrArtistName
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseCompare:
		return "compare"
	case ClauseAuthorID:
		return "author_id"
	case ClauseAuthorName:
		return "author_name"
	case ClauseTagOrArtistName:
		return "tag_or_artist_name"
	}
	return "unknown"
}

// Clause is a single boolean condition of an Expression.
type Clause struct {
	kind  ClauseKind
	field query.Field
	op    query.Operator
	value query.Value
}

// NewComparison creates a field comparison clause.
func NewComparison(f query.Field, op query.Operator, v query.Value) Clause {
	return Clause{kind: ClauseCompare, field: f, op: op, value: v}
}

// NewAuthorID creates an uploader-identifier equality clause.
func NewAuthorID(id string) Clause {
	return Clause{kind: ClauseAuthorID, field: query.FieldUploader, op: query.OpEqual, value: query.TextValue(id)}
}

// NewAuthorName creates an uploader-name equality clause.
func NewAuthorName(name string) Clause {
	return Clause{kind: ClauseAuthorName, field: query.FieldUploader, op: query.OpEqual, value: query.TextValue(name)}
}

// NewTagOrArtistName creates a clause matching a tag name or an artist name.
func NewTagOrArtistName(name string) Clause {
	return Clause{kind: ClauseTagOrArtistName, field: query.FieldNone, op: query.OpEqual, value: query.TextValue(name)}
}

// Kind returns the clause kind.
func (c Clause) Kind() ClauseKind { return c.kind }

// Field returns the compared field. FieldNone for tag/artist clauses.
func (c Clause) Field() query.Field { return c.field }

// Operator returns the comparison operator.
func (c Clause) Operator() query.Operator { return c.op }

// Value returns the compared value.
func (c Clause) Value() query.Value { return c.value }

func (c Clause) String() string {
	switch c.kind {
	case ClauseAuthorID:
		return "author.id = " + c.value.String()
	case ClauseAuthorName:
		return "author.username = " + c.value.String()
	case ClauseTagOrArtistName:
		return "(tags.name = " + c.value.String() + " OR artists.name = " + c.value.String() + ")"
	default:
		return c.field.String() + " " + c.op.String() + " " + c.value.String()
	}
}

// Expression is a conjunction of required clauses and excluded clauses.
// An empty Expression matches every post.
type Expression struct {
	and []Clause
	not []Clause
}

// NewExpression creates an Expression. Empty lists are stored as nil.
func NewExpression(and, not []Clause) Expression {
	return Expression{and: cloneClauses(and), not: cloneClauses(not)}
}

// And returns the clauses that must all hold, or nil.
func (e Expression) And() []Clause { return cloneClauses(e.and) }

// Not returns the clauses none of which may hold, or nil.
func (e Expression) Not() []Clause { return cloneClauses(e.not) }

// IsEmpty reports whether the expression matches everything.
func (e Expression) IsEmpty() bool {
	return len(e.and) == 0 && len(e.not) == 0
}

func (e Expression) String() string {
	parts := make([]string, 0, 2)
	if len(e.and) > 0 {
		parts = append(parts, "AND["+joinClauses(e.and)+"]")
	}
	if len(e.not) > 0 {
		parts = append(parts, "NOT["+joinClauses(e.not)+"]")
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func cloneClauses(cs []Clause) []Clause {
	if len(cs) == 0 {
		return nil
	}
	out := make([]Clause, len(cs))
	copy(out, cs)
	return out
}

func joinClauses(cs []Clause) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
