package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
	"github.com/marberj/toktrack/internal/export"
)

// Snapshot is one export's follower/following state at a point in time.
type Snapshot struct {
	Date      time.Time
	Source    string
	Followers map[string]struct{}
	Following map[string]struct{}

	GainedFollowers map[string]struct{}
	LostFollowers   map[string]struct{}
	GainedFollowing map[string]struct{}
	LostFollowing   map[string]struct{}
}

// PeriodChange aggregates the delta between two consecutive snapshots.
type PeriodChange struct {
	FromDate        time.Time
	ToDate          time.Time
	FollowersGained map[string]struct{}
	FollowersLost   map[string]struct{}
	FollowingGained map[string]struct{}
	FollowingLost   map[string]struct{}
	NetFollowers    int
	NetFollowing    int
}

// Analysis is the full multi-snapshot comparison result.
type Analysis struct {
	Snapshots []Snapshot
	Changes   []PeriodChange

	// TotalGained/TotalLost are unions over every transition, not a
	// first-vs-last difference: a follower gained and later lost
	// appears in both.
	TotalGained map[string]struct{}
	TotalLost   map[string]struct{}
}

// ExtractSnapshot builds a Snapshot from a parsed export. The snapshot
// date is the latest entry date in the export; when no entry carries a
// usable date, fallback is used. Invalid entries are dropped the same
// way the single-export import drops them.
func ExtractSnapshot(e *export.Export, source string, fallback time.Time) Snapshot {
	followers, _ := e.Followers()
	following, _ := e.Following()

	snap := Snapshot{
		Source:    source,
		Followers: make(map[string]struct{}, len(followers)),
		Following: make(map[string]struct{}, len(following)),
	}

	var latest time.Time
	for _, f := range followers {
		snap.Followers[f.Username] = struct{}{}
		if f.DateFollowed.After(latest) {
			latest = f.DateFollowed
		}
	}
	for _, f := range following {
		snap.Following[f.Username] = struct{}{}
		if f.DateFollowed.After(latest) {
			latest = f.DateFollowed
		}
	}

	if latest.IsZero() {
		latest = fallback
	}
	snap.Date = latest
	return snap
}

// Diff compares consecutive snapshots. Snapshots must already be
// sorted ascending by date; out-of-order input produces misleading
// deltas and is not corrected here.
func Diff(snapshots []Snapshot) *Analysis {
	analysis := &Analysis{
		Snapshots:   make([]Snapshot, 0, len(snapshots)),
		TotalGained: make(map[string]struct{}),
		TotalLost:   make(map[string]struct{}),
	}

	for i, snap := range snapshots {
		if i == 0 {
			// The first snapshot is the baseline.
			snap.GainedFollowers = map[string]struct{}{}
			snap.LostFollowers = map[string]struct{}{}
			snap.GainedFollowing = map[string]struct{}{}
			snap.LostFollowing = map[string]struct{}{}
			analysis.Snapshots = append(analysis.Snapshots, snap)
			continue
		}

		prev := snapshots[i-1]
		snap.GainedFollowers = subtract(snap.Followers, prev.Followers)
		snap.LostFollowers = subtract(prev.Followers, snap.Followers)
		snap.GainedFollowing = subtract(snap.Following, prev.Following)
		snap.LostFollowing = subtract(prev.Following, snap.Following)

		change := PeriodChange{
			FromDate:        prev.Date,
			ToDate:          snap.Date,
			FollowersGained: snap.GainedFollowers,
			FollowersLost:   snap.LostFollowers,
			FollowingGained: snap.GainedFollowing,
			FollowingLost:   snap.LostFollowing,
			NetFollowers:    len(snap.GainedFollowers) - len(snap.LostFollowers),
			NetFollowing:    len(snap.GainedFollowing) - len(snap.LostFollowing),
		}
		analysis.Changes = append(analysis.Changes, change)

		for username := range snap.GainedFollowers {
			analysis.TotalGained[username] = struct{}{}
		}
		for username := range snap.LostFollowers {
			analysis.TotalLost[username] = struct{}{}
		}

		analysis.Snapshots = append(analysis.Snapshots, snap)
	}

	return analysis
}

// Apply upserts one snapshot row per analyzed export. Re-running the
// same analysis reconciles to the same rows; counts are overwritten,
// never summed.
func (a *Analysis) Apply(ctx context.Context, q *database.Queries, userID uuid.UUID) (created, updated int, err error) {
	for _, snap := range a.Snapshots {
		row, err := q.UpsertFollowerSnapshot(ctx, database.UpsertFollowerSnapshotParams{
			ID:             uuid.New(),
			UserID:         userID,
			SnapshotDate:   snap.Date,
			FollowerCount:  int32(len(snap.Followers)),
			FollowingCount: int32(len(snap.Following)),
			CreatedAt:      time.Now(),
		})
		if err != nil {
			return created, updated, err
		}
		if row.Inserted {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}

func subtract(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}
