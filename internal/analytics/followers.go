package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
)

const defaultPageSize = 100

type AcquisitionDate struct {
	Date            time.Time `json:"date"`
	FollowersGained int64     `json:"followers_gained"`
}

type GrowthCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type FollowerStatsReport struct {
	TotalFollowers      int               `json:"total_followers"`
	TotalFollowing      int               `json:"total_following"`
	MutualsCount        int               `json:"mutuals_count"`
	FollowersOnlyCount  int               `json:"followers_only_count"`
	FollowingOnlyCount  int               `json:"following_only_count"`
	FollowerRatio       *float64          `json:"follower_ratio"`
	WeeklyGrowth        GrowthCounts      `json:"weekly_growth"`
	MonthlyGrowth       GrowthCounts      `json:"monthly_growth"`
	TopAcquisitionDates []AcquisitionDate `json:"top_acquisition_dates"`
}

// Relation is one username in a follower/following comparison.
type Relation struct {
	Username      string     `json:"username"`
	DateFollowed  *time.Time `json:"date_followed"`
	DateFollowing *time.Time `json:"date_following"`
	IsMutual      bool       `json:"is_mutual"`
}

// RelationPage is one page of comparison results.
type RelationPage struct {
	Count    int        `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Results  []Relation `json:"results"`
}

// FollowerStats aggregates set algebra counts, ratio and recent growth
// for one user. Set operations stay O(n) so follower lists in the low
// thousands remain cheap.
func (s *Service) FollowerStats(ctx context.Context, userID uuid.UUID) (*FollowerStatsReport, error) {
	followers, err := s.q.ListFollowerUsernames(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.q.ListFollowingUsernames(ctx, userID)
	if err != nil {
		return nil, err
	}

	followerSet := toSet(followers)
	followingSet := toSet(following)

	mutuals := 0
	for username := range followerSet {
		if _, ok := followingSet[username]; ok {
			mutuals++
		}
	}

	report := &FollowerStatsReport{
		TotalFollowers:     len(followerSet),
		TotalFollowing:     len(followingSet),
		MutualsCount:       mutuals,
		FollowersOnlyCount: len(followerSet) - mutuals,
		FollowingOnlyCount: len(followingSet) - mutuals,
	}
	if len(followingSet) > 0 {
		ratio := round(float64(len(followerSet))/float64(len(followingSet)), 2)
		report.FollowerRatio = &ratio
	}

	now := time.Now()
	for _, window := range []struct {
		since time.Time
		dst   *GrowthCounts
	}{
		{now.AddDate(0, 0, -7), &report.WeeklyGrowth},
		{now.AddDate(0, 0, -30), &report.MonthlyGrowth},
	} {
		window.dst.Followers, err = s.q.CountFollowersSince(ctx, database.CountFollowersSinceParams{UserID: userID, Since: window.since})
		if err != nil {
			return nil, err
		}
		window.dst.Following, err = s.q.CountFollowingSince(ctx, database.CountFollowingSinceParams{UserID: userID, Since: window.since})
		if err != nil {
			return nil, err
		}
	}

	topDates, err := s.q.GetTopAcquisitionDates(ctx, database.GetTopAcquisitionDatesParams{UserID: userID, Limit: 10})
	if err != nil {
		return nil, err
	}
	report.TopAcquisitionDates = make([]AcquisitionDate, 0, len(topDates))
	for _, row := range topDates {
		report.TopAcquisitionDates = append(report.TopAcquisitionDates, AcquisitionDate{
			Date:            row.Day,
			FollowersGained: row.Gained,
		})
	}
	return report, nil
}

// Mutuals returns followers ∩ following, most recent relation first.
func (s *Service) Mutuals(ctx context.Context, userID uuid.UUID, page, pageSize int) (*RelationPage, error) {
	followers, following, err := s.loadRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return paginate(ComputeMutuals(followers, following), page, pageSize), nil
}

// FollowersOnly returns followers − following.
func (s *Service) FollowersOnly(ctx context.Context, userID uuid.UUID, page, pageSize int) (*RelationPage, error) {
	followers, following, err := s.loadRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return paginate(ComputeFollowersOnly(followers, following), page, pageSize), nil
}

// FollowingOnly returns following − followers.
func (s *Service) FollowingOnly(ctx context.Context, userID uuid.UUID, page, pageSize int) (*RelationPage, error) {
	followers, following, err := s.loadRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return paginate(ComputeFollowingOnly(followers, following), page, pageSize), nil
}

func (s *Service) loadRelations(ctx context.Context, userID uuid.UUID) (map[string]time.Time, map[string]time.Time, error) {
	followerRows, err := s.q.ListFollowers(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	followingRows, err := s.q.ListFollowing(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	followers := make(map[string]time.Time, len(followerRows))
	for _, row := range followerRows {
		followers[row.Username] = row.DateFollowed
	}
	following := make(map[string]time.Time, len(followingRows))
	for _, row := range followingRows {
		following[row.Username] = row.DateFollowed
	}
	return followers, following, nil
}

// ComputeMutuals intersects the two relation maps, sorted by the most
// recent of the two dates, descending.
func ComputeMutuals(followers, following map[string]time.Time) []Relation {
	result := make([]Relation, 0)
	for username, followedAt := range followers {
		followingAt, ok := following[username]
		if !ok {
			continue
		}
		fa, fb := followedAt, followingAt
		result = append(result, Relation{
			Username:      username,
			DateFollowed:  &fa,
			DateFollowing: &fb,
			IsMutual:      true,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return latest(result[i]).After(latest(result[j]))
	})
	return result
}

// ComputeFollowersOnly returns followers not followed back, most
// recent first.
func ComputeFollowersOnly(followers, following map[string]time.Time) []Relation {
	result := make([]Relation, 0)
	for username, followedAt := range followers {
		if _, ok := following[username]; ok {
			continue
		}
		fa := followedAt
		result = append(result, Relation{Username: username, DateFollowed: &fa})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateFollowed.After(*result[j].DateFollowed)
	})
	return result
}

// ComputeFollowingOnly returns accounts followed that do not follow
// back, most recent first.
func ComputeFollowingOnly(followers, following map[string]time.Time) []Relation {
	result := make([]Relation, 0)
	for username, followingAt := range following {
		if _, ok := followers[username]; ok {
			continue
		}
		fb := followingAt
		result = append(result, Relation{Username: username, DateFollowing: &fb})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateFollowing.After(*result[j].DateFollowing)
	})
	return result
}

func latest(r Relation) time.Time {
	a, b := *r.DateFollowed, *r.DateFollowing
	if a.After(b) {
		return a
	}
	return b
}

func paginate(all []Relation, page, pageSize int) *RelationPage {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	return &RelationPage{
		Count:    len(all),
		Page:     page,
		PageSize: pageSize,
		Results:  all[start:end],
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
