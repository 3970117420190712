package analytics

import (
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
)

// PostView is the JSON shape of a post, with the derived engagement
// values attached.
type PostView struct {
	ID              uuid.UUID  `json:"id"`
	PostID          string     `json:"post_id"`
	Title           string     `json:"title"`
	Likes           int32      `json:"likes"`
	Date            time.Time  `json:"date"`
	CoverURL        string     `json:"cover_url"`
	VideoLink       string     `json:"video_link"`
	Views           *int32     `json:"views"`
	Comments        *int32     `json:"comments"`
	Shares          *int32     `json:"shares"`
	Bookmarks       *int32     `json:"bookmarks"`
	Duration        *int32     `json:"duration"`
	Hashtags        []string   `json:"hashtags"`
	Music           *string    `json:"music"`
	Location        *string    `json:"location"`
	IsPrivate       bool       `json:"is_private"`
	IsPinned        bool       `json:"is_pinned"`
	EngagementRatio *float64   `json:"engagement_ratio"`
	TotalEngagement int64      `json:"total_engagement"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewPostView(p database.Post) PostView {
	view := PostView{
		ID:              p.ID,
		PostID:          p.PostID,
		Title:           p.Title,
		Likes:           p.Likes,
		Date:            p.Date,
		CoverURL:        p.CoverUrl,
		VideoLink:       p.VideoLink,
		Views:           nullableInt32(p.Views),
		Comments:        nullableInt32(p.Comments),
		Shares:          nullableInt32(p.Shares),
		Bookmarks:       nullableInt32(p.Bookmarks),
		Duration:        nullableInt32(p.Duration),
		Hashtags:        p.Hashtags,
		Music:           nullableString(p.Music),
		Location:        nullableString(p.Location),
		IsPrivate:       p.IsPrivate,
		IsPinned:        p.IsPinned,
		TotalEngagement: totalEngagement(p),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Views.Valid && p.Views.Int32 > 0 {
		ratio := round(float64(p.Likes)/float64(p.Views.Int32), 4)
		view.EngagementRatio = &ratio
	}
	return view
}

// totalEngagement is likes+comments+shares with nulls treated as zero.
func totalEngagement(p database.Post) int64 {
	total := int64(p.Likes)
	if p.Comments.Valid {
		total += int64(p.Comments.Int32)
	}
	if p.Shares.Valid {
		total += int64(p.Shares.Int32)
	}
	return total
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func nullableInt32(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	n := v.Int32
	return &n
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
