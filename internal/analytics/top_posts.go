package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/marberj/toktrack/internal/database"
)

// topPeriods caps how many recent distinct periods a top-posts report
// covers.
const topPeriods = 10

type TopPostsParams struct {
	Window Window
	Metric Metric
	Limit  int
}

type PeriodTopPosts struct {
	Period      time.Time  `json:"period"`
	PeriodLabel string     `json:"period_label"`
	TopPosts    []PostView `json:"top_posts"`
}

type TopPostsReport struct {
	Window Window           `json:"window"`
	Metric Metric           `json:"metric"`
	Limit  int              `json:"limit"`
	Data   []PeriodTopPosts `json:"data"`
}

// TopPostsByTime ranks posts inside each of the most recent distinct
// periods. Ties keep the store's natural insertion order.
func (s *Service) TopPostsByTime(ctx context.Context, params TopPostsParams) (*TopPostsReport, error) {
	if params.Limit <= 0 {
		params.Limit = 5
	}

	periods, err := s.q.GetDistinctPeriods(ctx, database.GetDistinctPeriodsParams{
		Grouping: string(params.Window.Grouping()),
		Limit:    topPeriods,
	})
	if err != nil {
		return nil, err
	}

	report := &TopPostsReport{
		Window: params.Window,
		Metric: params.Metric,
		Limit:  params.Limit,
		Data:   make([]PeriodTopPosts, 0, len(periods)),
	}

	span := params.Window.Days()
	for _, period := range periods {
		posts, err := s.q.ListPostsInRange(ctx, database.ListPostsInRangeParams{
			StartDate: period,
			EndDate:   period.AddDate(0, 0, span),
		})
		if err != nil {
			return nil, err
		}

		top := rankByMetric(posts, params.Metric, params.Limit)
		views := make([]PostView, 0, len(top))
		for _, p := range top {
			views = append(views, NewPostView(p))
		}
		report.Data = append(report.Data, PeriodTopPosts{
			Period:      period,
			PeriodLabel: periodLabel(period, params.Window),
			TopPosts:    views,
		})
	}
	return report, nil
}

// rankByMetric sorts descending by the chosen metric, stably so equal
// posts keep their input order.
func rankByMetric(posts []database.Post, metric Metric, limit int) []database.Post {
	ranked := make([]database.Post, len(posts))
	copy(ranked, posts)

	switch metric {
	case MetricViews:
		sort.SliceStable(ranked, func(i, j int) bool {
			return viewsOrZero(ranked[i]) > viewsOrZero(ranked[j])
		})
	case MetricEngagement:
		sort.SliceStable(ranked, func(i, j int) bool {
			return totalEngagement(ranked[i]) > totalEngagement(ranked[j])
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Likes > ranked[j].Likes
		})
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func viewsOrZero(p database.Post) int32 {
	if p.Views.Valid {
		return p.Views.Int32
	}
	return 0
}

func periodLabel(period time.Time, window Window) string {
	switch window {
	case WindowDaily:
		return period.Format("Jan 02, 2006")
	case WindowMonthly:
		return period.Format("January 2006")
	default:
		return "Week of " + period.Format("Jan 02, 2006")
	}
}
