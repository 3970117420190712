package exports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
)

// WritePostsCSV streams every stored post as CSV. Optional columns
// come out empty when the source export did not carry them.
func WritePostsCSV(ctx context.Context, dbQueries *database.Queries, w io.Writer) error {

	posts, err := dbQueries.ListAllPosts(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"post_id",
		"title",
		"likes",
		"date",
		"cover_url",
		"video_link",
		"views",
		"comments",
		"shares",
		"bookmarks",
		"duration",
		"hashtags",
		"music",
		"location",
		"is_private",
		"is_pinned",
	}); err != nil {
		return err
	}

	for _, p := range posts {

		views := ""
		if p.Views.Valid {
			views = strconv.FormatInt(int64(p.Views.Int32), 10)
		}

		comments := ""
		if p.Comments.Valid {
			comments = strconv.FormatInt(int64(p.Comments.Int32), 10)
		}

		shares := ""
		if p.Shares.Valid {
			shares = strconv.FormatInt(int64(p.Shares.Int32), 10)
		}

		bookmarks := ""
		if p.Bookmarks.Valid {
			bookmarks = strconv.FormatInt(int64(p.Bookmarks.Int32), 10)
		}

		duration := ""
		if p.Duration.Valid {
			duration = strconv.FormatInt(int64(p.Duration.Int32), 10)
		}

		music := ""
		if p.Music.Valid {
			music = p.Music.String
		}

		location := ""
		if p.Location.Valid {
			location = p.Location.String
		}

		record := []string{
			p.PostID,
			p.Title,
			strconv.FormatInt(int64(p.Likes), 10),
			p.Date.Format(time.RFC3339),
			p.CoverUrl,
			p.VideoLink,
			views,
			comments,
			shares,
			bookmarks,
			duration,
			strings.Join(p.Hashtags, " "),
			music,
			location,
			strconv.FormatBool(p.IsPrivate),
			strconv.FormatBool(p.IsPinned),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteFollowersCSV streams the follower list for one user as CSV.
func WriteFollowersCSV(ctx context.Context, dbQueries *database.Queries, userID uuid.UUID, w io.Writer) error {

	followers, err := dbQueries.ListFollowers(ctx, userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"username", "date_followed"}); err != nil {
		return err
	}

	for _, f := range followers {
		record := []string{
			f.Username,
			f.DateFollowed.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
