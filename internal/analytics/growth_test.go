package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberj/toktrack/internal/database"
)

func snapshotAt(d int, followers, following int32) database.FollowerSnapshot {
	return database.FollowerSnapshot{
		SnapshotDate:   time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC),
		FollowerCount:  followers,
		FollowingCount: following,
	}
}

func TestBuildGrowth(t *testing.T) {
	snapshots := []database.FollowerSnapshot{
		snapshotAt(1, 100, 50),
		snapshotAt(8, 120, 40),
		snapshotAt(15, 110, 55),
	}

	points := BuildGrowth(snapshots)
	require.Len(t, points, 3)

	baseline := points[0]
	assert.Equal(t, int32(100), baseline.FollowerCount)
	assert.Zero(t, baseline.FollowersGained)
	assert.Zero(t, baseline.FollowersLost)
	assert.Zero(t, baseline.NetFollowers)
	assert.Zero(t, baseline.FollowingGained)
	assert.Zero(t, baseline.FollowingLost)
	assert.Zero(t, baseline.NetFollowing)
	require.NotNil(t, baseline.FollowerRatio)
	assert.InDelta(t, 2.0, *baseline.FollowerRatio, 0.001)

	up := points[1]
	assert.Equal(t, int32(20), up.FollowersGained)
	assert.Zero(t, up.FollowersLost)
	assert.Equal(t, int32(20), up.NetFollowers)
	assert.Zero(t, up.FollowingGained)
	assert.Equal(t, int32(10), up.FollowingLost)
	assert.Equal(t, int32(-10), up.NetFollowing)
	require.NotNil(t, up.FollowerRatio)
	assert.InDelta(t, 3.0, *up.FollowerRatio, 0.001)

	down := points[2]
	assert.Zero(t, down.FollowersGained)
	assert.Equal(t, int32(10), down.FollowersLost)
	assert.Equal(t, int32(-10), down.NetFollowers)
	assert.Equal(t, int32(15), down.FollowingGained)
	assert.Equal(t, int32(15), down.NetFollowing)
}

func TestBuildGrowth_RatioNilWhenNotFollowing(t *testing.T) {
	points := BuildGrowth([]database.FollowerSnapshot{snapshotAt(1, 100, 0)})
	require.Len(t, points, 1)
	assert.Nil(t, points[0].FollowerRatio)
}

func TestBuildGrowth_Empty(t *testing.T) {
	assert.Empty(t, BuildGrowth(nil))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	since, bounded := periodStart("week", now)
	assert.True(t, bounded)
	assert.Equal(t, now.AddDate(0, 0, -7), since)

	since, bounded = periodStart("month", now)
	assert.True(t, bounded)
	assert.Equal(t, now.AddDate(0, 0, -30), since)

	since, bounded = periodStart("year", now)
	assert.True(t, bounded)
	assert.Equal(t, now.AddDate(0, 0, -365), since)

	_, bounded = periodStart("all", now)
	assert.False(t, bounded)

	_, bounded = periodStart("", now)
	assert.False(t, bounded)
}

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, "month", normalizePeriod(""))
	assert.Equal(t, "month", normalizePeriod("month"))
	assert.Equal(t, "week", normalizePeriod("week"))
	assert.Equal(t, "all", normalizePeriod("bogus"))
}
