package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createUser = `
INSERT INTO users (id, username, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id, username, created_at, updated_at
`

type CreateUserParams struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.ID, arg.Username, arg.CreatedAt, arg.UpdatedAt)
	var i User
	err := row.Scan(&i.ID, &i.Username, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getUserByUsername = `
SELECT id, username, created_at, updated_at FROM users WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var i User
	err := row.Scan(&i.ID, &i.Username, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getAllUsers = `
SELECT id, username, created_at, updated_at FROM users ORDER BY created_at
`

func (q *Queries) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, getAllUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.Username, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
