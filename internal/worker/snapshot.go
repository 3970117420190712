package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/database"
)

// RunSnapshot upserts today's follower and following counts for every
// user. Re-running on the same day overwrites that day's row.
func RunSnapshot(db *database.Queries) {
	log.Println("Worker: Starting snapshot run...")
	ctx := context.Background()

	users, err := db.GetAllUsers(ctx)
	if err != nil {
		log.Printf("Worker Error getting users: %v", err)
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	count := 0

	for _, user := range users {
		followers, err := db.CountFollowers(ctx, user.ID)
		if err != nil {
			log.Printf("Worker Error counting followers for %v: %v", user.Username, err)
			continue
		}
		following, err := db.CountFollowing(ctx, user.ID)
		if err != nil {
			log.Printf("Worker Error counting following for %v: %v", user.Username, err)
			continue
		}

		_, err = db.UpsertFollowerSnapshot(ctx, database.UpsertFollowerSnapshotParams{
			ID:             uuid.New(),
			UserID:         user.ID,
			SnapshotDate:   today,
			FollowerCount:  int32(followers),
			FollowingCount: int32(following),
			CreatedAt:      time.Now(),
		})
		if err != nil {
			log.Printf("Worker Error saving snapshot for %v: %v", user.Username, err)
			continue
		}
		count++
	}

	log.Printf("Worker: Snapshot run complete, %d users recorded", count)
}
