package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/utils"
)

// UserRepo encapsulates all database queries for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,name,email,password_hash,location,created_at,updated_at"

// Create inserts a new user with a freshly hashed password and returns the
// stored record. Emails are normalized to lower case before the uniqueness
// check is left to the database.
func (r *UserRepo) Create(ctx context.Context, name, email, password, location string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.User{}, &model.ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return model.User{}, &model.ValidationError{Field: "password", Reason: "required"}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	var loc *string
	if location != "" {
		loc = &location
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, location) VALUES (?,?,?,?,?)",
		id, name, email, hash, loc)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Location, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by creation time then id. The fixed order
// keeps downstream stable sorts (leaderboard ties) deterministic.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Location, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Count reports the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// UserPatch carries the optional fields of a partial profile update. Nil
// pointers mean "leave unchanged".
type UserPatch struct {
	Name     *string
	Location *string
}

// Update applies a partial update, mutating only fields present in the
// patch, and returns the stored record.
func (r *UserRepo) Update(ctx context.Context, id string, p UserPatch) (model.User, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if p.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *p.Name)
	}
	if p.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *p.Location)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "no such row" from "nothing changed".
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// SetPassword re-hashes with a fresh salt and stores the new credential.
func (r *UserRepo) SetPassword(ctx context.Context, id, password string, cost int) error {
	if password == "" {
		return &model.ValidationError{Field: "password", Reason: "required"}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-deletes a user. The policy is restrict, not cascade: a user
// who still owns waste logs or rewards cannot be removed and the call
// returns ErrConflict. The existence check and the delete run in one
// transaction so a log created in between cannot be orphaned.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deps int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM waste_logs WHERE user_id=?) +
		        (SELECT COUNT(*) FROM rewards WHERE user_id=?)`, id, id).Scan(&deps)
	if err != nil {
		return err
	}
	if deps > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM community_members WHERE user_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// isDuplicate detects the MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
