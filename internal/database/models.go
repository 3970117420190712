package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Post struct {
	ID        uuid.UUID
	PostID    string
	Title     string
	Likes     int32
	Date      time.Time
	CoverUrl  string
	VideoLink string
	Views     sql.NullInt32
	Comments  sql.NullInt32
	Shares    sql.NullInt32
	Bookmarks sql.NullInt32
	Duration  sql.NullInt32
	Hashtags  pq.StringArray
	Music     sql.NullString
	Location  sql.NullString
	IsPrivate bool
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Follower struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Username     string
	DateFollowed time.Time
	CreatedAt    time.Time
}

type Following struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Username     string
	DateFollowed time.Time
	CreatedAt    time.Time
}

type FollowerSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SnapshotDate   time.Time
	FollowerCount  int32
	FollowingCount int32
	CreatedAt      time.Time
}
