package analytics

import (
	"context"
	"time"

	"github.com/marberj/toktrack/internal/database"
)

type TrendParams struct {
	Grouping Grouping
	Days     int
}

type TrendPoint struct {
	Date       time.Time `json:"date"`
	PostCount  int64     `json:"post_count"`
	TotalLikes int64     `json:"total_likes"`
	TotalViews int64     `json:"total_views"`
	AvgLikes   float64   `json:"avg_likes"`
	AvgViews   float64   `json:"avg_views"`
}

type TrendReport struct {
	Grouping  Grouping     `json:"grouping"`
	Days      int          `json:"days"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Data      []TrendPoint `json:"data"`
}

// Trends buckets posts in the lookback window by truncated date and
// aggregates likes/views per bucket, ascending. Buckets without posts
// are absent, not zero-filled.
func (s *Service) Trends(ctx context.Context, params TrendParams) (*TrendReport, error) {
	if params.Days <= 0 {
		params.Days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -params.Days)

	rows, err := s.q.GetPostTrends(ctx, database.GetPostTrendsParams{
		Grouping:  string(params.Grouping),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}

	report := &TrendReport{
		Grouping:  params.Grouping,
		Days:      params.Days,
		StartDate: start,
		EndDate:   end,
		Data:      make([]TrendPoint, 0, len(rows)),
	}
	for _, row := range rows {
		report.Data = append(report.Data, TrendPoint{
			Date:       row.Period,
			PostCount:  row.PostCount,
			TotalLikes: row.TotalLikes,
			TotalViews: row.TotalViews,
			AvgLikes:   round(row.AvgLikes, 2),
			AvgViews:   round(row.AvgViews, 2),
		})
	}
	return report, nil
}
