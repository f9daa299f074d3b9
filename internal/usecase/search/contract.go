package search

import (
	"context"

	"github.com/kailas-cloud/postquery/internal/domain/search/filter"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
)

// Repository executes a compiled filter against the post store.
type Repository interface {
	Find(ctx context.Context, c filter.Compiled) ([]result.Post, error)
}

// Cache stores result pages by request key. Implementations swallow their
// own failures: a broken cache degrades to a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]result.Post, bool)
	Put(ctx context.Context, key string, posts []result.Post)
}
