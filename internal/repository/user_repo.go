package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

type UserRepo struct{ DB *sql.DB }

// GetOrCreate returns the user with the given username, inserting it first if needed.
// Concurrent callers for the same username all receive the same row.
func (r *UserRepo) GetOrCreate(ctx context.Context, tx *sql.Tx, username string) (*model.User, error) {
	u := &model.User{}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, created_at
	`, uuid.NewString(), username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
