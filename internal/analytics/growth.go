package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
)

// GrowthPoint is one snapshot plus the deltas against the previous one,
// in both directions.
type GrowthPoint struct {
	Date            time.Time `json:"date"`
	FollowerCount   int32     `json:"follower_count"`
	FollowingCount  int32     `json:"following_count"`
	FollowerRatio   *float64  `json:"follower_ratio"`
	FollowersGained int32     `json:"followers_gained"`
	FollowersLost   int32     `json:"followers_lost"`
	FollowingGained int32     `json:"following_gained"`
	FollowingLost   int32     `json:"following_lost"`
	NetFollowers    int32     `json:"net_follower_growth"`
	NetFollowing    int32     `json:"net_following_growth"`
}

type GrowthReport struct {
	Period     string        `json:"period"`
	DataPoints int           `json:"data_points"`
	Points     []GrowthPoint `json:"points"`
}

// Growth walks stored snapshots for the given period (week, month, year
// or all, defaulting to month) and reports follower and following
// deltas between consecutive points.
func (s *Service) Growth(ctx context.Context, userID uuid.UUID, period string) (*GrowthReport, error) {
	if period == "" {
		period = "month"
	}

	var (
		snapshots []database.FollowerSnapshot
		err       error
	)
	since, bounded := periodStart(period, time.Now())
	if bounded {
		snapshots, err = s.q.ListSnapshotsSince(ctx, database.ListSnapshotsSinceParams{UserID: userID, Since: since})
	} else {
		snapshots, err = s.q.ListSnapshots(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	points := BuildGrowth(snapshots)
	return &GrowthReport{Period: normalizePeriod(period), DataPoints: len(points), Points: points}, nil
}

// BuildGrowth computes per-snapshot deltas. Snapshots must be ordered
// by date ascending; the first point is a baseline with zero deltas.
func BuildGrowth(snapshots []database.FollowerSnapshot) []GrowthPoint {
	points := make([]GrowthPoint, 0, len(snapshots))
	for i, snap := range snapshots {
		point := GrowthPoint{
			Date:           snap.SnapshotDate,
			FollowerCount:  snap.FollowerCount,
			FollowingCount: snap.FollowingCount,
		}
		if snap.FollowingCount > 0 {
			ratio := round(float64(snap.FollowerCount)/float64(snap.FollowingCount), 2)
			point.FollowerRatio = &ratio
		}
		if i > 0 {
			prev := snapshots[i-1]
			followerDelta := snap.FollowerCount - prev.FollowerCount
			followingDelta := snap.FollowingCount - prev.FollowingCount
			point.NetFollowers = followerDelta
			point.NetFollowing = followingDelta
			if followerDelta > 0 {
				point.FollowersGained = followerDelta
			} else {
				point.FollowersLost = -followerDelta
			}
			if followingDelta > 0 {
				point.FollowingGained = followingDelta
			} else {
				point.FollowingLost = -followingDelta
			}
		}
		points = append(points, point)
	}
	return points
}

func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, 0, -30), true
	case "year":
		return now.AddDate(0, 0, -365), true
	default:
		return time.Time{}, false
	}
}

func normalizePeriod(period string) string {
	switch period {
	case "", "month":
		return "month"
	case "week", "year":
		return period
	}
	return "all"
}
