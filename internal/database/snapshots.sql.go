package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const upsertFollowerSnapshot = `
INSERT INTO follower_snapshots (id, user_id, snapshot_date, follower_count, following_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, snapshot_date) DO UPDATE SET
    follower_count = EXCLUDED.follower_count,
    following_count = EXCLUDED.following_count
RETURNING id, user_id, snapshot_date, follower_count, following_count, created_at, (xmax = 0) AS inserted
`

type UpsertFollowerSnapshotParams struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SnapshotDate   time.Time
	FollowerCount  int32
	FollowingCount int32
	CreatedAt      time.Time
}

type UpsertFollowerSnapshotRow struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SnapshotDate   time.Time
	FollowerCount  int32
	FollowingCount int32
	CreatedAt      time.Time
	Inserted       bool
}

func (q *Queries) UpsertFollowerSnapshot(ctx context.Context, arg UpsertFollowerSnapshotParams) (UpsertFollowerSnapshotRow, error) {
	row := q.db.QueryRowContext(ctx, upsertFollowerSnapshot,
		arg.ID, arg.UserID, arg.SnapshotDate, arg.FollowerCount, arg.FollowingCount, arg.CreatedAt)
	var i UpsertFollowerSnapshotRow
	err := row.Scan(&i.ID, &i.UserID, &i.SnapshotDate, &i.FollowerCount, &i.FollowingCount, &i.CreatedAt, &i.Inserted)
	return i, err
}

const listSnapshots = `
SELECT id, user_id, snapshot_date, follower_count, following_count, created_at
FROM follower_snapshots
WHERE user_id = $1
ORDER BY snapshot_date
`

func (q *Queries) ListSnapshots(ctx context.Context, userID uuid.UUID) ([]FollowerSnapshot, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshots, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

const listSnapshotsSince = `
SELECT id, user_id, snapshot_date, follower_count, following_count, created_at
FROM follower_snapshots
WHERE user_id = $1 AND snapshot_date >= $2
ORDER BY snapshot_date
`

type ListSnapshotsSinceParams struct {
	UserID uuid.UUID
	Since  time.Time
}

func (q *Queries) ListSnapshotsSince(ctx context.Context, arg ListSnapshotsSinceParams) ([]FollowerSnapshot, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshotsSince, arg.UserID, arg.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func scanSnapshots(rows *sql.Rows) ([]FollowerSnapshot, error) {
	var items []FollowerSnapshot
	for rows.Next() {
		var i FollowerSnapshot
		if err := rows.Scan(&i.ID, &i.UserID, &i.SnapshotDate, &i.FollowerCount, &i.FollowingCount, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
