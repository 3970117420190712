package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createPost = `
INSERT INTO posts (
    id, post_id, title, likes, date, cover_url, video_link,
    views, comments, shares, bookmarks, duration, hashtags, music, location,
    is_private, is_pinned, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
`

type CreatePostParams struct {
	ID        uuid.UUID
	PostID    string
	Title     string
	Likes     int32
	Date      time.Time
	CoverUrl  string
	VideoLink string
	Views     sql.NullInt32
	Comments  sql.NullInt32
	Shares    sql.NullInt32
	Bookmarks sql.NullInt32
	Duration  sql.NullInt32
	Hashtags  pq.StringArray
	Music     sql.NullString
	Location  sql.NullString
	IsPrivate bool
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.ID, arg.PostID, arg.Title, arg.Likes, arg.Date, arg.CoverUrl, arg.VideoLink,
		arg.Views, arg.Comments, arg.Shares, arg.Bookmarks, arg.Duration, arg.Hashtags,
		arg.Music, arg.Location, arg.IsPrivate, arg.IsPinned, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPost(row)
}

const updatePost = `
UPDATE posts SET
    title = $2,
    likes = $3,
    date = $4,
    cover_url = $5,
    video_link = $6,
    views = $7,
    comments = $8,
    shares = $9,
    bookmarks = $10,
    duration = $11,
    hashtags = $12,
    music = $13,
    location = $14,
    is_private = $15,
    is_pinned = $16,
    updated_at = $17
WHERE post_id = $1
RETURNING id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
`

type UpdatePostParams struct {
	PostID    string
	Title     string
	Likes     int32
	Date      time.Time
	CoverUrl  string
	VideoLink string
	Views     sql.NullInt32
	Comments  sql.NullInt32
	Shares    sql.NullInt32
	Bookmarks sql.NullInt32
	Duration  sql.NullInt32
	Hashtags  pq.StringArray
	Music     sql.NullString
	Location  sql.NullString
	IsPrivate bool
	IsPinned  bool
	UpdatedAt time.Time
}

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost,
		arg.PostID, arg.Title, arg.Likes, arg.Date, arg.CoverUrl, arg.VideoLink,
		arg.Views, arg.Comments, arg.Shares, arg.Bookmarks, arg.Duration, arg.Hashtags,
		arg.Music, arg.Location, arg.IsPrivate, arg.IsPinned, arg.UpdatedAt,
	)
	return scanPost(row)
}

const getPostByPostID = `
SELECT id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
FROM posts WHERE post_id = $1
`

func (q *Queries) GetPostByPostID(ctx context.Context, postID string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByPostID, postID)
	return scanPost(row)
}

const listPosts = `
SELECT id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
FROM posts ORDER BY date DESC LIMIT $1 OFFSET $2
`

type ListPostsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listPosts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

const listAllPosts = `
SELECT id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
FROM posts ORDER BY created_at, id
`

func (q *Queries) ListAllPosts(ctx context.Context) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listAllPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

const listPostsInRange = `
SELECT id, post_id, title, likes, date, cover_url, video_link, views, comments, shares, bookmarks, duration, hashtags, music, location, is_private, is_pinned, created_at, updated_at
FROM posts WHERE date >= $1 AND date < $2 ORDER BY created_at, id
`

type ListPostsInRangeParams struct {
	StartDate time.Time
	EndDate   time.Time
}

func (q *Queries) ListPostsInRange(ctx context.Context, arg ListPostsInRangeParams) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx, listPostsInRange, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

const countPosts = `
SELECT count(*) FROM posts
`

func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPosts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteAllPosts = `
DELETE FROM posts
`

func (q *Queries) DeleteAllPosts(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllPosts)
	return err
}

const getAllTitles = `
SELECT title FROM posts
`

func (q *Queries) GetAllTitles(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, getAllTitles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		items = append(items, title)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPostTrends = `
SELECT date_trunc($1, date) AS period,
       count(*) AS post_count,
       coalesce(sum(likes), 0) AS total_likes,
       coalesce(sum(views), 0) AS total_views,
       coalesce(avg(likes), 0) AS avg_likes,
       coalesce(avg(views), 0) AS avg_views
FROM posts
WHERE date >= $2 AND date <= $3
GROUP BY period
ORDER BY period
`

type GetPostTrendsParams struct {
	Grouping  string
	StartDate time.Time
	EndDate   time.Time
}

type GetPostTrendsRow struct {
	Period     time.Time
	PostCount  int64
	TotalLikes int64
	TotalViews int64
	AvgLikes   float64
	AvgViews   float64
}

func (q *Queries) GetPostTrends(ctx context.Context, arg GetPostTrendsParams) ([]GetPostTrendsRow, error) {
	rows, err := q.db.QueryContext(ctx, getPostTrends, arg.Grouping, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetPostTrendsRow
	for rows.Next() {
		var i GetPostTrendsRow
		if err := rows.Scan(&i.Period, &i.PostCount, &i.TotalLikes, &i.TotalViews, &i.AvgLikes, &i.AvgViews); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getDistinctPeriods = `
SELECT DISTINCT date_trunc($1, date) AS period
FROM posts
ORDER BY period DESC
LIMIT $2
`

type GetDistinctPeriodsParams struct {
	Grouping string
	Limit    int32
}

func (q *Queries) GetDistinctPeriods(ctx context.Context, arg GetDistinctPeriodsParams) ([]time.Time, error) {
	rows, err := q.db.QueryContext(ctx, getDistinctPeriods, arg.Grouping, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []time.Time
	for rows.Next() {
		var period time.Time
		if err := rows.Scan(&period); err != nil {
			return nil, err
		}
		items = append(items, period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPostAggregates = `
SELECT count(*) AS total_posts,
       coalesce(sum(likes), 0) AS total_likes,
       coalesce(sum(views), 0) AS total_views,
       coalesce(sum(comments), 0) AS total_comments,
       coalesce(sum(shares), 0) AS total_shares,
       coalesce(avg(likes), 0) AS avg_likes,
       coalesce(avg(views), 0) AS avg_views,
       min(date) AS min_date,
       max(date) AS max_date
FROM posts
`

type GetPostAggregatesRow struct {
	TotalPosts    int64
	TotalLikes    int64
	TotalViews    int64
	TotalComments int64
	TotalShares   int64
	AvgLikes      float64
	AvgViews      float64
	MinDate       sql.NullTime
	MaxDate       sql.NullTime
}

func (q *Queries) GetPostAggregates(ctx context.Context) (GetPostAggregatesRow, error) {
	row := q.db.QueryRowContext(ctx, getPostAggregates)
	var i GetPostAggregatesRow
	err := row.Scan(&i.TotalPosts, &i.TotalLikes, &i.TotalViews, &i.TotalComments,
		&i.TotalShares, &i.AvgLikes, &i.AvgViews, &i.MinDate, &i.MaxDate)
	return i, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (Post, error) {
	var i Post
	err := row.Scan(
		&i.ID, &i.PostID, &i.Title, &i.Likes, &i.Date, &i.CoverUrl, &i.VideoLink,
		&i.Views, &i.Comments, &i.Shares, &i.Bookmarks, &i.Duration, &i.Hashtags,
		&i.Music, &i.Location, &i.IsPrivate, &i.IsPinned, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var items []Post
	for rows.Next() {
		i, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
