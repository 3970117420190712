package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/marberj/toktrack/internal/database"
)

type EngagementEntry struct {
	PostView
	DaysSincePost    int     `json:"days_since_post"`
	EngagementPerDay float64 `json:"engagement_per_day"`
	LikesPerDay      float64 `json:"likes_per_day"`
}

type EngagementReport struct {
	Limit int               `json:"limit"`
	Posts []EngagementEntry `json:"posts"`
}

// EngagementRatios ranks every post by engagement accumulated per day
// since it was published.
func (s *Service) EngagementRatios(ctx context.Context, limit int) (*EngagementReport, error) {
	posts, err := s.q.ListAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return RankEngagement(posts, time.Now(), limit), nil
}

// RankEngagement computes per-day engagement for each post and sorts
// descending. days_since_post floors at 1 so same-day and future-dated
// posts never divide by zero or a negative span.
func RankEngagement(posts []database.Post, now time.Time, limit int) *EngagementReport {
	if limit <= 0 {
		limit = 20
	}

	entries := make([]EngagementEntry, 0, len(posts))
	for _, p := range posts {
		days := int(now.Sub(p.Date).Hours() / 24)
		if days < 1 {
			days = 1
		}

		engagement := totalEngagement(p)
		entries = append(entries, EngagementEntry{
			PostView:         NewPostView(p),
			DaysSincePost:    days,
			EngagementPerDay: round(float64(engagement)/float64(days), 2),
			LikesPerDay:      round(float64(p.Likes)/float64(days), 2),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EngagementPerDay > entries[j].EngagementPerDay
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return &EngagementReport{Limit: limit, Posts: entries}
}
