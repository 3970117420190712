package analytics

import "fmt"

// Grouping selects the date_trunc unit for trend bucketing.
type Grouping string

const (
	GroupByDay   Grouping = "day"
	GroupByWeek  Grouping = "week"
	GroupByMonth Grouping = "month"
)

func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "", string(GroupByDay):
		return GroupByDay, nil
	case string(GroupByWeek):
		return GroupByWeek, nil
	case string(GroupByMonth):
		return GroupByMonth, nil
	}
	return "", fmt.Errorf("unknown grouping %q", s)
}

// Window is a top-posts period size with a fixed day span.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

func ParseWindow(s string) (Window, error) {
	switch s {
	case string(WindowDaily):
		return WindowDaily, nil
	case "", string(WindowWeekly):
		return WindowWeekly, nil
	case string(WindowMonthly):
		return WindowMonthly, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

func (w Window) Days() int {
	switch w {
	case WindowDaily:
		return 1
	case WindowMonthly:
		return 30
	default:
		return 7
	}
}

func (w Window) Grouping() Grouping {
	switch w {
	case WindowDaily:
		return GroupByDay
	case WindowMonthly:
		return GroupByMonth
	default:
		return GroupByWeek
	}
}

// Metric ranks posts inside a window.
type Metric string

const (
	MetricLikes Metric = "likes"
	MetricViews Metric = "views"
	// MetricEngagement is likes+comments+shares, computed in memory;
	// it is not a stored column.
	MetricEngagement Metric = "engagement"
)

func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", string(MetricLikes):
		return MetricLikes, nil
	case string(MetricViews):
		return MetricViews, nil
	case string(MetricEngagement):
		return MetricEngagement, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}
