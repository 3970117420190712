package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberj/toktrack/internal/database"
)

func testPost(postID string, likes int32, date time.Time) database.Post {
	return database.Post{
		ID:     uuid.New(),
		PostID: postID,
		Likes:  likes,
		Date:   date,
	}
}

func TestRankEngagement(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	old := testPost("1", 100, now.AddDate(0, 0, -5))
	old.Comments = sql.NullInt32{Int32: 10, Valid: true}
	old.Shares = sql.NullInt32{Int32: 5, Valid: true}

	report := RankEngagement([]database.Post{old}, now, 20)
	require.Len(t, report.Posts, 1)

	entry := report.Posts[0]
	assert.Equal(t, 5, entry.DaysSincePost)
	assert.Equal(t, int64(115), entry.TotalEngagement)
	assert.InDelta(t, 23.0, entry.EngagementPerDay, 0.001)
	assert.InDelta(t, 20.0, entry.LikesPerDay, 0.001)
}

func TestRankEngagement_SameDayFloorsToOneDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	posted := testPost("1", 50, now.Add(-2*time.Hour))

	report := RankEngagement([]database.Post{posted}, now, 20)
	require.Len(t, report.Posts, 1)
	assert.Equal(t, 1, report.Posts[0].DaysSincePost)
	assert.InDelta(t, 50.0, report.Posts[0].LikesPerDay, 0.001)
}

func TestRankEngagement_SortsAndLimits(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	posts := []database.Post{
		testPost("slow", 10, now.AddDate(0, 0, -10)),
		testPost("fast", 100, now.AddDate(0, 0, -2)),
		testPost("mid", 30, now.AddDate(0, 0, -3)),
	}

	report := RankEngagement(posts, now, 2)
	require.Len(t, report.Posts, 2)
	assert.Equal(t, "fast", report.Posts[0].PostID)
	assert.Equal(t, "mid", report.Posts[1].PostID)
}

func TestNewPostView_EngagementRatio(t *testing.T) {
	p := testPost("1", 25, time.Now())
	p.Views = sql.NullInt32{Int32: 1000, Valid: true}

	view := NewPostView(p)
	require.NotNil(t, view.EngagementRatio)
	assert.InDelta(t, 0.025, *view.EngagementRatio, 0.0001)

	p.Views = sql.NullInt32{}
	view = NewPostView(p)
	assert.Nil(t, view.EngagementRatio)
	assert.Nil(t, view.Views)
}
