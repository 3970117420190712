package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const followerExists = `
SELECT EXISTS (SELECT 1 FROM followers WHERE user_id = $1 AND username = $2)
`

type FollowerExistsParams struct {
	UserID   uuid.UUID
	Username string
}

func (q *Queries) FollowerExists(ctx context.Context, arg FollowerExistsParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, followerExists, arg.UserID, arg.Username)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const bulkInsertFollowers = `
INSERT INTO followers (id, user_id, username, date_followed, created_at)
SELECT gen_random_uuid(), $1, t.username, t.date_followed, $4
FROM unnest($2::text[], $3::timestamptz[]) AS t (username, date_followed)
ON CONFLICT (user_id, username) DO NOTHING
`

type BulkInsertFollowersParams struct {
	UserID    uuid.UUID
	Usernames []string
	Dates     []time.Time
	CreatedAt time.Time
}

func (q *Queries) BulkInsertFollowers(ctx context.Context, arg BulkInsertFollowersParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, bulkInsertFollowers,
		arg.UserID, pq.Array(arg.Usernames), pq.Array(arg.Dates), arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listFollowers = `
SELECT id, user_id, username, date_followed, created_at
FROM followers WHERE user_id = $1 ORDER BY date_followed DESC
`

func (q *Queries) ListFollowers(ctx context.Context, userID uuid.UUID) ([]Follower, error) {
	rows, err := q.db.QueryContext(ctx, listFollowers, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Follower
	for rows.Next() {
		var i Follower
		if err := rows.Scan(&i.ID, &i.UserID, &i.Username, &i.DateFollowed, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listFollowerUsernames = `
SELECT username FROM followers WHERE user_id = $1
`

func (q *Queries) ListFollowerUsernames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listFollowerUsernames, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

const countFollowers = `
SELECT count(*) FROM followers WHERE user_id = $1
`

func (q *Queries) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFollowers, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countFollowersSince = `
SELECT count(*) FROM followers WHERE user_id = $1 AND date_followed >= $2
`

type CountFollowersSinceParams struct {
	UserID uuid.UUID
	Since  time.Time
}

func (q *Queries) CountFollowersSince(ctx context.Context, arg CountFollowersSinceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFollowersSince, arg.UserID, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteFollowersByUser = `
DELETE FROM followers WHERE user_id = $1
`

func (q *Queries) DeleteFollowersByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteFollowersByUser, userID)
	return err
}

const getTopAcquisitionDates = `
SELECT date_trunc('day', date_followed) AS day, count(*) AS gained
FROM followers
WHERE user_id = $1
GROUP BY day
ORDER BY gained DESC, day DESC
LIMIT $2
`

type GetTopAcquisitionDatesParams struct {
	UserID uuid.UUID
	Limit  int32
}

type GetTopAcquisitionDatesRow struct {
	Day    time.Time
	Gained int64
}

func (q *Queries) GetTopAcquisitionDates(ctx context.Context, arg GetTopAcquisitionDatesParams) ([]GetTopAcquisitionDatesRow, error) {
	rows, err := q.db.QueryContext(ctx, getTopAcquisitionDates, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetTopAcquisitionDatesRow
	for rows.Next() {
		var i GetTopAcquisitionDatesRow
		if err := rows.Scan(&i.Day, &i.Gained); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const followingExists = `
SELECT EXISTS (SELECT 1 FROM following WHERE user_id = $1 AND username = $2)
`

type FollowingExistsParams struct {
	UserID   uuid.UUID
	Username string
}

func (q *Queries) FollowingExists(ctx context.Context, arg FollowingExistsParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, followingExists, arg.UserID, arg.Username)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const bulkInsertFollowing = `
INSERT INTO following (id, user_id, username, date_followed, created_at)
SELECT gen_random_uuid(), $1, t.username, t.date_followed, $4
FROM unnest($2::text[], $3::timestamptz[]) AS t (username, date_followed)
ON CONFLICT (user_id, username) DO NOTHING
`

type BulkInsertFollowingParams struct {
	UserID    uuid.UUID
	Usernames []string
	Dates     []time.Time
	CreatedAt time.Time
}

func (q *Queries) BulkInsertFollowing(ctx context.Context, arg BulkInsertFollowingParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, bulkInsertFollowing,
		arg.UserID, pq.Array(arg.Usernames), pq.Array(arg.Dates), arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listFollowing = `
SELECT id, user_id, username, date_followed, created_at
FROM following WHERE user_id = $1 ORDER BY date_followed DESC
`

func (q *Queries) ListFollowing(ctx context.Context, userID uuid.UUID) ([]Following, error) {
	rows, err := q.db.QueryContext(ctx, listFollowing, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Following
	for rows.Next() {
		var i Following
		if err := rows.Scan(&i.ID, &i.UserID, &i.Username, &i.DateFollowed, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listFollowingUsernames = `
SELECT username FROM following WHERE user_id = $1
`

func (q *Queries) ListFollowingUsernames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listFollowingUsernames, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

const countFollowing = `
SELECT count(*) FROM following WHERE user_id = $1
`

func (q *Queries) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFollowing, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countFollowingSince = `
SELECT count(*) FROM following WHERE user_id = $1 AND date_followed >= $2
`

type CountFollowingSinceParams struct {
	UserID uuid.UUID
	Since  time.Time
}

func (q *Queries) CountFollowingSince(ctx context.Context, arg CountFollowingSinceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFollowingSince, arg.UserID, arg.Since)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteFollowingByUser = `
DELETE FROM following WHERE user_id = $1
`

func (q *Queries) DeleteFollowingByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteFollowingByUser, userID)
	return err
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var items []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
