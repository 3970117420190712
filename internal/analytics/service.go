package analytics

import "github.com/marberj/toktrack/internal/database"

// Service exposes read-only computations over the post and
// follower/following store.
type Service struct {
	q *database.Queries
}

func NewService(q *database.Queries) *Service {
	return &Service{q: q}
}
