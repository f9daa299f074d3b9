package post

import (
	"time"

	"github.com/kailas-cloud/postquery/internal/domain/search/result"
)

// postRow is one row of the search projection.
type postRow struct {
	ID               string
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AuthorID         string
	AuthorUsername   string
	Likes            int64
	Views            int64
	CommentCount     int64
	ModerationStatus string
	SourceLink       string
	TagString        string
	ArtistString     string
}

func (r postRow) toResult() result.Post {
	return result.Post{
		ID:               r.ID,
		Description:      r.Description,
		Author:           result.Author{ID: r.AuthorID, Username: r.AuthorUsername},
		Likes:            r.Likes,
		Views:            r.Views,
		CommentCount:     r.CommentCount,
		ModerationStatus: r.ModerationStatus,
		SourceLink:       r.SourceLink,
		Tags:             result.SplitNames(r.TagString),
		Artists:          result.SplitNames(r.ArtistString),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
