package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

func mustPage(t *testing.T, limit, pageNumber int, orderBy OrderColumn, ascending bool) Page {
	t.Helper()
	p, err := NewPage(limit, pageNumber, orderBy, ascending)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func mustCompile(t *testing.T, raw string, page Page) Compiled {
	t.Helper()
	c, err := CompileQuery(raw, page)
	if err != nil {
		t.Fatalf("CompileQuery(%q): %v", raw, err)
	}
	return c
}

func TestCompile_RoundTrip(t *testing.T) {
	page := mustPage(t, 20, 1, OrderLikes, false)
	c := mustCompile(t, "catgirl -artist_x likes:>=50 uploader:alice", page)

	wantAnd := []Clause{
		NewTagOrArtistName("catgirl"),
		NewComparison(query.FieldLikes, query.OpGreaterEqual, query.IntValue(50)),
		NewAuthorName("alice"),
	}
	wantNot := []Clause{NewTagOrArtistName("artist_x")}

	if !reflect.DeepEqual(c.Filter().And(), wantAnd) {
		t.Errorf("And() = %v, want %v", c.Filter().And(), wantAnd)
	}
	if !reflect.DeepEqual(c.Filter().Not(), wantNot) {
		t.Errorf("Not() = %v, want %v", c.Filter().Not(), wantNot)
	}
	if c.Skip() != 20 || c.Take() != 20 {
		t.Errorf("skip/take = %d/%d, want 20/20", c.Skip(), c.Take())
	}
	if c.OrderBy() != OrderLikes || c.Ascending() {
		t.Errorf("order = %s asc=%v", c.OrderBy(), c.Ascending())
	}
}

func TestCompile_NegatedFieldIsPlacedNotInverted(t *testing.T) {
	c := mustCompile(t, "-likes:>100", mustPage(t, 10, 0, OrderCreatedAt, false))

	if got := c.Filter().And(); got != nil {
		t.Errorf("And() = %v, want nil", got)
	}
	not := c.Filter().Not()
	if len(not) != 1 {
		t.Fatalf("expected 1 NOT clause, got %d", len(not))
	}
	want := NewComparison(query.FieldLikes, query.OpGreater, query.IntValue(100))
	if !reflect.DeepEqual(not[0], want) {
		t.Errorf("NOT[0] = %v, want %v", not[0], want)
	}
}

func TestCompile_Uploader(t *testing.T) {
	const id = "0b8e9a3c-5f1d-4c2a-9e7b-1a2b3c4d5e6f"
	page := mustPage(t, 10, 0, OrderCreatedAt, false)

	tests := []struct {
		raw  string
		want Clause
	}{
		{"uploader:" + id, NewAuthorID(id)},
		{"uploader:=" + id, NewAuthorID(id)},
		{"uploader:Alice", NewAuthorName("Alice")},
		{"uploader:0b8e9a3c-5f1d-1c2a-9e7b-1a2b3c4d5e6f", NewAuthorName("0b8e9a3c-5f1d-1c2a-9e7b-1a2b3c4d5e6f")},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			and := mustCompile(t, tc.raw, page).Filter().And()
			if len(and) != 1 || !reflect.DeepEqual(and[0], tc.want) {
				t.Errorf("And() = %v, want [%v]", and, tc.want)
			}
		})
	}
}

func TestCompile_PreservesInputOrder(t *testing.T) {
	page := mustPage(t, 10, 0, OrderCreatedAt, false)
	c := mustCompile(t, "views:<10 -b a -moderationStatus:=PENDING likes:!=3 -c", page)

	and := c.Filter().And()
	if len(and) != 3 {
		t.Fatalf("expected 3 AND clauses, got %v", and)
	}
	if and[0].Field() != query.FieldViews || and[1].Kind() != ClauseTagOrArtistName || and[2].Field() != query.FieldLikes {
		t.Errorf("AND order = %v", and)
	}

	not := c.Filter().Not()
	if len(not) != 3 {
		t.Fatalf("expected 3 NOT clauses, got %v", not)
	}
	if not[0].Value().Text() != "b" || not[1].Field() != query.FieldModerationStatus || not[2].Value().Text() != "c" {
		t.Errorf("NOT order = %v", not)
	}
}

func TestCompile_Idempotent(t *testing.T) {
	tokens, err := query.Tokenize("a -b createdAt:>=2023-01-01 uploader:bob -views:<5")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	page := mustPage(t, 27, 3, OrderViews, true)

	first := Compile(tokens, page)
	second := Compile(tokens, page)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("compilations differ:\n%v\n%v", first.Filter(), second.Filter())
	}
}

func TestCompile_EmptyTokensMatchEverything(t *testing.T) {
	page := mustPage(t, 5, 2, OrderUpdatedAt, true)
	c := Compile(nil, page)

	if !c.Filter().IsEmpty() {
		t.Errorf("expected empty filter, got %v", c.Filter())
	}
	if c.Filter().And() != nil || c.Filter().Not() != nil {
		t.Error("empty lists must be nil")
	}
	if c.Skip() != 10 || c.Take() != 5 {
		t.Errorf("skip/take = %d/%d", c.Skip(), c.Take())
	}
	if c.Filter().String() != "*" {
		t.Errorf("String() = %q", c.Filter().String())
	}
}

func TestCompile_OnlyNegatedElidesAnd(t *testing.T) {
	c := mustCompile(t, "-a -b", mustPage(t, 1, 0, OrderCreatedAt, false))
	if c.Filter().And() != nil {
		t.Errorf("And() = %v, want nil", c.Filter().And())
	}
	if len(c.Filter().Not()) != 2 {
		t.Errorf("Not() = %v", c.Filter().Not())
	}
}

func TestCompileQuery_EmptyQuery(t *testing.T) {
	page := mustPage(t, 1, 0, OrderCreatedAt, false)
	for _, raw := range []string{"", " ", "\t\n  "} {
		_, err := CompileQuery(raw, page)
		if !errors.Is(err, query.ErrEmptyQuery) {
			t.Errorf("CompileQuery(%q) error = %v, want ErrEmptyQuery", raw, err)
		}
	}
}

func TestCompileQuery_TokenizeError(t *testing.T) {
	_, err := CompileQuery("a foo:bar", mustPage(t, 1, 0, OrderCreatedAt, false))
	if !errors.Is(err, query.ErrUnknownField) {
		t.Errorf("error = %v, want ErrUnknownField", err)
	}
}

func TestExpression_AccessorsReturnCopies(t *testing.T) {
	e := NewExpression([]Clause{NewTagOrArtistName("x")}, nil)
	and := e.And()
	and[0] = NewTagOrArtistName("mutated")
	if e.And()[0].Value().Text() != "x" {
		t.Error("expression was mutated through accessor")
	}
}
