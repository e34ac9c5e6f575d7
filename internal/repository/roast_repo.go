package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

type RoastRepo struct{ DB *sql.DB }

// Insert appends a roast row. Roasts are never updated or deleted.
func (r *RoastRepo) Insert(ctx context.Context, tx *sql.Tx, userID, text string) (*model.Roast, error) {
	rs := &model.Roast{ID: uuid.NewString(), UserID: userID, Text: text}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO roasts (id, user_id, roast_text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, rs.ID, userID, text).Scan(&rs.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert roast: %w", err)
	}
	return rs, nil
}

func (r *RoastRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roasts WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// RecentByUser returns up to limit roasts, newest first.
func (r *RoastRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]model.Roast, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, roast_text, created_at
		FROM roasts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Roast, 0, limit)
	for rows.Next() {
		var rs model.Roast
		if err := rows.Scan(&rs.ID, &rs.UserID, &rs.Text, &rs.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *RoastRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM roasts`).Scan(&n)
	return n, err
}
