package post

import (
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/query"
)

const postsTable = "posts"

const (
	authorNameSQL  = "posts.author_id IN (SELECT users.id FROM users WHERE users.username = ?)"
	tagOrArtistSQL = "(EXISTS (SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id" +
		" WHERE post_tags.post_id = posts.id AND tags.name = ?)" +
		" OR EXISTS (SELECT 1 FROM post_artists JOIN artists ON artists.id = post_artists.artist_id" +
		" WHERE post_artists.post_id = posts.id AND artists.name = ?))"
)

// whereExprs renders the filter as parameterized gorm expressions, ANDed by the caller.
// A NOT-list comparison becomes the inverted comparison; other NOT-list clauses are wrapped in NOT (...).
func whereExprs(e filter.Expression) []clause.Expression {
	and, not := e.And(), e.Not()
	exprs := make([]clause.Expression, 0, len(and)+len(not))
	for _, c := range and {
		exprs = append(exprs, clauseExpr(c, false))
	}
	for _, c := range not {
		exprs = append(exprs, clauseExpr(c, true))
	}
	return exprs
}

func clauseExpr(c filter.Clause, negated bool) clause.Expression {
	switch c.Kind() {
	case filter.ClauseCompare:
		op := c.Operator()
		if negated {
			op = op.Invert()
		}
		return comparison(column(c.Field()), op, c.Value().Any())
	case filter.ClauseAuthorID:
		op := query.OpEqual
		if negated {
			op = op.Invert()
		}
		return comparison(clause.Column{Table: postsTable, Name: "author_id"}, op, c.Value().Text())
	case filter.ClauseAuthorName:
		return maybeNot(clause.Expr{SQL: authorNameSQL, Vars: []any{c.Value().Text()}}, negated)
	case filter.ClauseTagOrArtistName:
		name := c.Value().Text()
		return maybeNot(clause.Expr{SQL: tagOrArtistSQL, Vars: []any{name, name}}, negated)
	}
	return clause.Expr{SQL: "1 = 0"}
}

func maybeNot(e clause.Expr, negated bool) clause.Expression {
	if !negated {
		return e
	}
	return clause.Expr{SQL: "NOT (" + e.SQL + ")", Vars: e.Vars}
}

func comparison(col clause.Column, op query.Operator, v any) clause.Expression {
	switch op {
	case query.OpEqual:
		return clause.Eq{Column: col, Value: v}
	case query.OpNotEqual:
		return clause.Neq{Column: col, Value: v}
	case query.OpLess:
		return clause.Lt{Column: col, Value: v}
	case query.OpLessEqual:
		return clause.Lte{Column: col, Value: v}
	case query.OpGreater:
		return clause.Gt{Column: col, Value: v}
	case query.OpGreaterEqual:
		return clause.Gte{Column: col, Value: v}
	}
	return clause.Expr{SQL: "1 = 0"}
}

func column(f query.Field) clause.Column {
	var name string
	switch f {
	case query.FieldID:
		name = "id"
	case query.FieldCreatedAt:
		name = "created_at"
	case query.FieldUpdatedAt:
		name = "updated_at"
	case query.FieldUploader:
		name = "author_id"
	case query.FieldLikes:
		name = "likes"
	case query.FieldViews:
		name = "views"
	case query.FieldModerationStatus:
		name = "moderation_status"
	case query.FieldSourceLink:
		name = "source_link"
	case query.FieldNone:
		name = "id"
	}
	return clause.Column{Table: postsTable, Name: name}
}

func orderColumn(o filter.OrderColumn) string {
	switch o {
	case filter.OrderCreatedAt:
		return "created_at"
	case filter.OrderUpdatedAt:
		return "updated_at"
	case filter.OrderLikes:
		return "likes"
	case filter.OrderViews:
		return "views"
	case filter.OrderCommentCount:
		return "comment_count"
	}
	return "created_at"
}
