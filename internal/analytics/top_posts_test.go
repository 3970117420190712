package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberj/toktrack/internal/database"
)

func TestRankByMetric_Views(t *testing.T) {
	a := testPost("a", 10, time.Now())
	a.Views = sql.NullInt32{Int32: 500, Valid: true}
	b := testPost("b", 50, time.Now())
	b.Views = sql.NullInt32{Int32: 100, Valid: true}
	c := testPost("c", 5, time.Now())

	ranked := rankByMetric([]database.Post{a, b, c}, MetricViews, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].PostID)
	assert.Equal(t, "b", ranked[1].PostID)
	assert.Equal(t, "c", ranked[2].PostID)
}

func TestRankByMetric_TiesKeepInputOrder(t *testing.T) {
	a := testPost("first", 10, time.Now())
	b := testPost("second", 10, time.Now())

	ranked := rankByMetric([]database.Post{a, b}, MetricLikes, 2)
	assert.Equal(t, "first", ranked[0].PostID)
	assert.Equal(t, "second", ranked[1].PostID)
}

func TestRankByMetric_Engagement(t *testing.T) {
	a := testPost("a", 10, time.Now())
	a.Comments = sql.NullInt32{Int32: 100, Valid: true}
	b := testPost("b", 50, time.Now())

	ranked := rankByMetric([]database.Post{b, a}, MetricEngagement, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].PostID)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, 1, WindowDaily.Days())
	assert.Equal(t, 7, WindowWeekly.Days())
	assert.Equal(t, 30, WindowMonthly.Days())

	assert.Equal(t, GroupByDay, WindowDaily.Grouping())
	assert.Equal(t, GroupByWeek, WindowWeekly.Grouping())
	assert.Equal(t, GroupByMonth, WindowMonthly.Grouping())
}

func TestParseParams(t *testing.T) {
	g, err := ParseGrouping("")
	require.NoError(t, err)
	assert.Equal(t, GroupByDay, g)

	_, err = ParseGrouping("year")
	assert.Error(t, err)

	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, WindowWeekly, w)

	m, err := ParseMetric("engagement")
	require.NoError(t, err)
	assert.Equal(t, MetricEngagement, m)

	_, err = ParseMetric("shares")
	assert.Error(t, err)
}

func TestPeriodLabel(t *testing.T) {
	period := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 04, 2024", periodLabel(period, WindowDaily))
	assert.Equal(t, "March 2024", periodLabel(period, WindowMonthly))
	assert.Equal(t, "Week of Mar 04, 2024", periodLabel(period, WindowWeekly))
}
