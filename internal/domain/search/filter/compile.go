package filter

import (
	"strings"

	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

// Compiled is a filter expression with the execution metadata of one page.
type Compiled struct {
	filter Expression
	page   Page
}

// Filter returns the boolean filter.
func (c Compiled) Filter() Expression { return c.filter }

// Page returns the paging parameters.
func (c Compiled) Page() Page { return c.page }

// Skip returns the number of rows to skip.
func (c Compiled) Skip() int { return c.page.Skip() }

// Take returns the number of rows to return.
func (c Compiled) Take() int { return c.page.Take() }

// OrderBy returns the sort column.
func (c Compiled) OrderBy() OrderColumn { return c.page.OrderBy() }

// Ascending reports the sort direction.
func (c Compiled) Ascending() bool { return c.page.Ascending() }

// Compile builds the filter for already validated tokens.
// Negated tokens go to the NOT list with their operator unchanged; the rest go
// to the AND list. Input order is kept inside each list.
func Compile(tokens []query.Token, page Page) Compiled {
	var and, not []Clause
	for _, tok := range tokens {
		c := clauseFor(tok)
		if tok.Negated() {
			not = append(not, c)
		} else {
			and = append(and, c)
		}
	}
	return Compiled{filter: NewExpression(and, not), page: page}
}

// CompileQuery tokenizes raw and compiles it. Whitespace-only input is
// rejected with query.ErrEmptyQuery.
func CompileQuery(raw string, page Page) (Compiled, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Compiled{}, query.ErrEmptyQuery
	}
	tokens, err := query.Tokenize(trimmed)
	if err != nil {
		return Compiled{}, err
	}
	return Compile(tokens, page), nil
}

func clauseFor(tok query.Token) Clause {
	if tok.IsFree() {
		return NewTagOrArtistName(tok.Value().Text())
	}
	if tok.Field() == query.FieldUploader {
		if query.IsUUIDv4(tok.Value().Text()) {
			return NewAuthorID(tok.Value().Text())
		}
		return NewAuthorName(tok.Value().Text())
	}
	return NewComparison(tok.Field(), tok.Operator(), tok.Value())
}
