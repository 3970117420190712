package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relDate(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeMutuals(t *testing.T) {
	followers := map[string]time.Time{
		"alice": relDate(1),
		"bob":   relDate(5),
		"carol": relDate(3),
	}
	following := map[string]time.Time{
		"bob":   relDate(2),
		"carol": relDate(8),
		"dave":  relDate(4),
	}

	mutuals := ComputeMutuals(followers, following)
	require.Len(t, mutuals, 2)

	// Sorted by the most recent of the two dates: carol (day 8) before
	// bob (day 5).
	assert.Equal(t, "carol", mutuals[0].Username)
	assert.Equal(t, "bob", mutuals[1].Username)
	assert.True(t, mutuals[0].IsMutual)
	require.NotNil(t, mutuals[1].DateFollowed)
	assert.Equal(t, relDate(5), *mutuals[1].DateFollowed)
}

func TestComputeSets_Partition(t *testing.T) {
	followers := map[string]time.Time{
		"alice": relDate(1), "bob": relDate(2), "carol": relDate(3),
	}
	following := map[string]time.Time{
		"bob": relDate(2), "dave": relDate(4),
	}

	mutuals := ComputeMutuals(followers, following)
	followersOnly := ComputeFollowersOnly(followers, following)
	followingOnly := ComputeFollowingOnly(followers, following)

	assert.Equal(t, len(followers), len(mutuals)+len(followersOnly))
	assert.Equal(t, len(following), len(mutuals)+len(followingOnly))

	require.Len(t, followersOnly, 2)
	assert.Equal(t, "carol", followersOnly[0].Username)
	assert.Nil(t, followersOnly[0].DateFollowing)

	require.Len(t, followingOnly, 1)
	assert.Equal(t, "dave", followingOnly[0].Username)
	assert.Nil(t, followingOnly[0].DateFollowed)
}

func TestPaginate(t *testing.T) {
	all := make([]Relation, 0, 250)
	for i := 0; i < 250; i++ {
		all = append(all, Relation{Username: "u"})
	}

	page := paginate(all, 1, 0)
	assert.Equal(t, 250, page.Count)
	assert.Equal(t, defaultPageSize, page.PageSize)
	assert.Len(t, page.Results, 100)

	page = paginate(all, 3, 100)
	assert.Len(t, page.Results, 50)

	page = paginate(all, 9, 100)
	assert.Empty(t, page.Results)
	assert.Equal(t, 250, page.Count)

	page = paginate(all, 0, 100)
	assert.Equal(t, 1, page.Page)
}
