package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/regen-eco/regen-server/internal/model"
)

// RewardRepo encapsulates all database queries for badge rewards.
type RewardRepo struct{ DB *sql.DB }

func NewRewardRepo(db *sql.DB) *RewardRepo { return &RewardRepo{DB: db} }

const rewardCols = "id,user_id,badge_name,points,awarded_at"

// Create validates and inserts a reward in one transaction; the owning user
// must exist or nothing is persisted.
func (r *RewardRepo) Create(ctx context.Context, rw *model.Reward) error {
	if err := rw.Validate(); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id=?", rw.UserID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	rw.ID = uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO rewards (id, user_id, badge_name, points) VALUES (?,?,?,?)",
		rw.ID, rw.UserID, rw.BadgeName, rw.Points); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT "+rewardCols+" FROM rewards WHERE id=?", rw.ID).
		Scan(&rw.ID, &rw.UserID, &rw.BadgeName, &rw.Points, &rw.AwardedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID fetches a reward by id.
func (r *RewardRepo) GetByID(ctx context.Context, id string) (model.Reward, error) {
	var rw model.Reward
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+rewardCols+" FROM rewards WHERE id=? LIMIT 1", id).
		Scan(&rw.ID, &rw.UserID, &rw.BadgeName, &rw.Points, &rw.AwardedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reward{}, ErrNotFound
	}
	return rw, err
}

// ListByUser returns a user's rewards, newest first. An empty userID lists
// every reward on the platform.
func (r *RewardRepo) ListByUser(ctx context.Context, userID string) ([]model.Reward, error) {
	q := "SELECT " + rewardCols + " FROM rewards"
	var args []any
	if userID != "" {
		q += " WHERE user_id=?"
		args = append(args, userID)
	}
	q += " ORDER BY awarded_at DESC, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reward
	for rows.Next() {
		var rw model.Reward
		if err := rows.Scan(&rw.ID, &rw.UserID, &rw.BadgeName, &rw.Points, &rw.AwardedAt); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

// Delete hard-deletes a reward.
func (r *RewardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rewards WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
