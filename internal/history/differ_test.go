package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberj/toktrack/internal/export"
)

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestDiff_TwoSnapshots(t *testing.T) {
	snapshots := []Snapshot{
		{Date: day(1), Followers: set("a", "b", "c"), Following: set("x")},
		{Date: day(2), Followers: set("b", "c", "d"), Following: set("x")},
	}

	analysis := Diff(snapshots)
	require.Len(t, analysis.Snapshots, 2)
	require.Len(t, analysis.Changes, 1)

	first := analysis.Snapshots[0]
	assert.Empty(t, first.GainedFollowers)
	assert.Empty(t, first.LostFollowers)

	change := analysis.Changes[0]
	assert.Equal(t, set("d"), change.FollowersGained)
	assert.Equal(t, set("a"), change.FollowersLost)
	assert.Equal(t, 0, change.NetFollowers)
	assert.Empty(t, change.FollowingGained)
	assert.Empty(t, change.FollowingLost)

	for username := range change.FollowersGained {
		_, both := change.FollowersLost[username]
		assert.False(t, both, "%s in both gained and lost for one period", username)
	}
}

func TestDiff_TotalsAreUnions(t *testing.T) {
	// "b" is gained in period 1 and lost in period 2, so it counts in
	// both totals.
	snapshots := []Snapshot{
		{Date: day(1), Followers: set("a"), Following: set()},
		{Date: day(2), Followers: set("a", "b"), Following: set()},
		{Date: day(3), Followers: set("a"), Following: set()},
	}

	analysis := Diff(snapshots)
	assert.Equal(t, set("b"), analysis.TotalGained)
	assert.Equal(t, set("b"), analysis.TotalLost)
}

func TestDiff_SingleSnapshotIsBaseline(t *testing.T) {
	analysis := Diff([]Snapshot{
		{Date: day(1), Followers: set("a"), Following: set("b")},
	})

	require.Len(t, analysis.Snapshots, 1)
	assert.Empty(t, analysis.Changes)
	assert.Empty(t, analysis.TotalGained)
	assert.Empty(t, analysis.TotalLost)
}

func TestDiff_Empty(t *testing.T) {
	analysis := Diff(nil)
	assert.Empty(t, analysis.Snapshots)
	assert.Empty(t, analysis.Changes)
}

func TestExtractSnapshot(t *testing.T) {
	body := `{
		"Profile And Settings": {
			"Follower": {
				"FansList": [
					{"UserName": "alice", "Date": "2024-06-01 10:00:00"},
					{"UserName": "bob", "Date": "2024-06-03 10:00:00"}
				]
			},
			"Following": {
				"Following": [
					{"UserName": "carol", "Date": "2024-06-02 10:00:00"}
				]
			}
		}
	}`

	e, err := export.Detect([]byte(body))
	require.NoError(t, err)

	snap := ExtractSnapshot(e, "june.json", day(30))
	assert.Equal(t, "june.json", snap.Source)
	assert.Equal(t, set("alice", "bob"), snap.Followers)
	assert.Equal(t, set("carol"), snap.Following)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), snap.Date)
}

func TestExtractSnapshot_FallbackDate(t *testing.T) {
	e, err := export.Detect([]byte(`{"Post": {"Posts": {"VideoList": []}}}`))
	require.NoError(t, err)

	snap := ExtractSnapshot(e, "empty.json", day(15))
	assert.Equal(t, day(15), snap.Date)
	assert.Empty(t, snap.Followers)
}
