// Package postquery embeds the advanced post search in a Go program, without
// the HTTP server.
//
// A query is a space-separated list of words and field comparisons:
//
//	catgirl -artist_x likes:>=50 uploader:alice -createdAt:<2023-01-01
//
// Words match tag or artist names; field:<op>value compares a post attribute;
// a leading '-' excludes matching posts.
//
//	client, _ := postquery.New(ctx,
//	    postquery.WithPostgres("host=localhost user=app dbname=posts"),
//	    postquery.WithRedisCache("localhost:6379", ""),
//	)
//	defer client.Close()
//	posts, _ := client.Search(ctx, "catgirl likes:>100",
//	    postquery.WithLimit(20), postquery.WithOrderBy(postquery.OrderLikes))
//
// Explain compiles a query without touching the database:
//
//	plan, _ := postquery.Explain("catgirl -likes:>100")
//	fmt.Println(plan.Filter) // AND[(tags.name = catgirl OR artists.name = catgirl)] NOT[likes > 100]
package postquery
