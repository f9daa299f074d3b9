// Package post executes compiled search filters against the post table.
package post

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/postquery/internal/db"
	"github.com/kailas-cloud/postquery/internal/db/gormdb"
	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
)

// DefaultTimeout bounds one search query.
const DefaultTimeout = 5 * time.Second

// Repo implements usecase/search.Repository.
type Repo struct {
	db       *gorm.DB
	driver   string
	timeout  time.Duration
	duration *prometheus.HistogramVec
}

// New creates a post repository.
// duration is a histogram vec with labels "driver" and "status", passed explicitly; may be nil.
func New(d *gormdb.DB, timeout time.Duration, duration *prometheus.HistogramVec) *Repo {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Repo{db: d.Gorm(), driver: d.Driver(), timeout: timeout, duration: duration}
}

// Find returns one page of posts matching c.
func (r *Repo) Find(ctx context.Context, c filter.Compiled) ([]result.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	var rows []postRow
	err := r.scope(r.db.WithContext(ctx), c).Find(&rows).Error
	r.observe(start, err)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}

	posts := make([]result.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toResult()
	}
	return posts, nil
}

// scope applies projection, filter, order and paging to tx.
func (r *Repo) scope(tx *gorm.DB, c filter.Compiled) *gorm.DB {
	tx = tx.Table(postsTable).
		Select(r.projection()).
		Joins("LEFT JOIN users ON users.id = posts.author_id")

	if exprs := whereExprs(c.Filter()); len(exprs) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: exprs})
	}

	return tx.
		Order(clause.OrderByColumn{
			Column: clause.Column{Table: postsTable, Name: orderColumn(c.OrderBy())},
			Desc:   !c.Ascending(),
		}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: postsTable, Name: "id"}}).
		Offset(c.Skip()).
		Limit(c.Take())
}

func (r *Repo) projection() string {
	return "posts.id, posts.description, posts.created_at, posts.updated_at, posts.author_id, " +
		"users.username AS author_username, posts.likes, posts.views, posts.comment_count, " +
		"posts.moderation_status, posts.source_link, " +
		"(SELECT " + r.joinNames("tags.name") + " FROM post_tags JOIN tags ON tags.id = post_tags.tag_id" +
		" WHERE post_tags.post_id = posts.id) AS tag_string, " +
		"(SELECT " + r.joinNames("artists.name") + " FROM post_artists JOIN artists ON artists.id = post_artists.artist_id" +
		" WHERE post_artists.post_id = posts.id) AS artist_string"
}

// joinNames aggregates a name column into one comma-separated string.
func (r *Repo) joinNames(col string) string {
	if r.driver == gormdb.DriverMySQL {
		return fmt.Sprintf("COALESCE(GROUP_CONCAT(%s ORDER BY %s SEPARATOR ','), '')", col, col)
	}
	return fmt.Sprintf("COALESCE(string_agg(%s, ',' ORDER BY %s), '')", col, col)
}

func (r *Repo) observe(start time.Time, err error) {
	if r.duration == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.duration.WithLabelValues(r.driver, status).Observe(time.Since(start).Seconds())
}
