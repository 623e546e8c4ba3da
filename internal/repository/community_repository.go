package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/regen-eco/regen-server/internal/model"
)

// CommunityRepo encapsulates queries for community groups and their
// memberships.
type CommunityRepo struct{ DB *sql.DB }

func NewCommunityRepo(db *sql.DB) *CommunityRepo { return &CommunityRepo{DB: db} }

const communityCols = "id,name,impact_score,created_at"

// Create inserts a new community group.
func (r *CommunityRepo) Create(ctx context.Context, c *model.Community) error {
	if strings.TrimSpace(c.Name) == "" {
		return &model.ValidationError{Field: "name", Reason: "required"}
	}
	c.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO communities (id, name, impact_score) VALUES (?,?,?)",
		c.ID, c.Name, c.ImpactScore)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT "+communityCols+" FROM communities WHERE id=?", c.ID).
		Scan(&c.ID, &c.Name, &c.ImpactScore, &c.CreatedAt)
}

// GetByID fetches a community by id.
func (r *CommunityRepo) GetByID(ctx context.Context, id string) (model.Community, error) {
	var c model.Community
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+communityCols+" FROM communities WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.ImpactScore, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Community{}, ErrNotFound
	}
	return c, err
}

// List returns all community groups ordered by impact score, best first.
func (r *CommunityRepo) List(ctx context.Context) ([]model.Community, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+communityCols+" FROM communities ORDER BY impact_score DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Community
	for rows.Next() {
		var c model.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.ImpactScore, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Join adds a user to a community. Both sides are checked inside one
// transaction; joining twice returns ErrConflict.
func (r *CommunityRepo) Join(ctx context.Context, communityID, userID string) (model.CommunityMember, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.CommunityMember{}, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM communities WHERE id=?", communityID).Scan(&exists); err != nil {
		return model.CommunityMember{}, err
	}
	if exists == 0 {
		return model.CommunityMember{}, ErrNotFound
	}
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id=?", userID).Scan(&exists); err != nil {
		return model.CommunityMember{}, err
	}
	if exists == 0 {
		return model.CommunityMember{}, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO community_members (community_id, user_id) VALUES (?,?)",
		communityID, userID); err != nil {
		if isDuplicate(err) {
			return model.CommunityMember{}, ErrConflict
		}
		return model.CommunityMember{}, err
	}
	var m model.CommunityMember
	if err := tx.QueryRowContext(ctx,
		"SELECT community_id, user_id, joined_at FROM community_members WHERE community_id=? AND user_id=?",
		communityID, userID).Scan(&m.CommunityID, &m.UserID, &m.JoinedAt); err != nil {
		return model.CommunityMember{}, err
	}
	return m, tx.Commit()
}

// Members lists a community's memberships, oldest first.
func (r *CommunityRepo) Members(ctx context.Context, communityID string) ([]model.CommunityMember, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT community_id, user_id, joined_at FROM community_members WHERE community_id=? ORDER BY joined_at, user_id",
		communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CommunityMember
	for rows.Next() {
		var m model.CommunityMember
		if err := rows.Scan(&m.CommunityID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete hard-deletes a community and its membership rows in one
// transaction.
func (r *CommunityRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM community_members WHERE community_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM communities WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
