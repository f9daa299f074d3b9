package post

import (
	"context"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kailas-cloud/postquery/internal/db/gormdb"
	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
)

// newDryRunRepo builds a repository whose queries are rendered but never sent.
func newDryRunRepo(t *testing.T, driver string) *Repo {
	t.Helper()
	var dialector gorm.Dialector
	switch driver {
	case gormdb.DriverMySQL:
		dialector = mysql.New(mysql.Config{DSN: "u:p@tcp(127.0.0.1:3306)/posts", SkipInitializeWithVersion: true})
	default:
		dialector = postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=u dbname=posts sslmode=disable"})
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return New(gormdb.New(gdb, driver), 0, nil)
}

func renderSQL(t *testing.T, r *Repo, raw string, page filter.Page) string {
	t.Helper()
	c, err := filter.CompileQuery(raw, page)
	if err != nil {
		t.Fatalf("CompileQuery(%q): %v", raw, err)
	}
	return r.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return r.scope(tx.WithContext(context.Background()), c).Find(&[]postRow{})
	})
}

func mustPage(t *testing.T, limit, pageNumber int, orderBy filter.OrderColumn, ascending bool) filter.Page {
	t.Helper()
	p, err := filter.NewPage(limit, pageNumber, orderBy, ascending)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}
