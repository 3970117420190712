package analytics

import (
	"context"
	"time"
)

type PostStatsReport struct {
	TotalPosts    int64      `json:"total_posts"`
	TotalLikes    int64      `json:"total_likes"`
	TotalViews    int64      `json:"total_views"`
	TotalComments int64      `json:"total_comments"`
	TotalShares   int64      `json:"total_shares"`
	AvgLikes      float64    `json:"avg_likes"`
	AvgViews      float64    `json:"avg_views"`
	FirstPostDate *time.Time `json:"first_post_date"`
	LastPostDate  *time.Time `json:"last_post_date"`
}

// PostStats summarizes the whole posts table.
func (s *Service) PostStats(ctx context.Context) (*PostStatsReport, error) {
	agg, err := s.q.GetPostAggregates(ctx)
	if err != nil {
		return nil, err
	}
	report := &PostStatsReport{
		TotalPosts:    agg.TotalPosts,
		TotalLikes:    agg.TotalLikes,
		TotalViews:    agg.TotalViews,
		TotalComments: agg.TotalComments,
		TotalShares:   agg.TotalShares,
		AvgLikes:      round(agg.AvgLikes, 2),
		AvgViews:      round(agg.AvgViews, 2),
	}
	if agg.MinDate.Valid {
		d := agg.MinDate.Time
		report.FirstPostDate = &d
	}
	if agg.MaxDate.Valid {
		d := agg.MaxDate.Time
		report.LastPostDate = &d
	}
	return report, nil
}
