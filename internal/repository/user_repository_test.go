package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "location", "created_at", "updated_at"}
}

func TestUserUpdateOnlyLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET location=? WHERE id=?")).
		WithArgs("Mombasa", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "Asha", "asha@example.com", "$2a$hash", "Mombasa", now, now))

	repo := NewUserRepo(db)
	loc := "Mombasa"
	u, err := repo.Update(context.Background(), "u1", UserPatch{Location: &loc})
	require.NoError(t, err)

	// Only the supplied field changed; name and email are untouched.
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
	require.NotNil(t, u.Location)
	assert.Equal(t, "Mombasa", *u.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateEmptyPatchReadsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "Asha", "asha@example.com", "$2a$hash", nil, now, now))

	repo := NewUserRepo(db)
	u, err := repo.Update(context.Background(), "u1", UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)
	assert.Nil(t, u.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateRequiresEmailAndPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	_, err = repo.Create(context.Background(), "Asha", "", "pw", "", 4)
	assert.Error(t, err)
	_, err = repo.Create(context.Background(), "Asha", "asha@example.com", "", "", 4)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'asha@example.com' for key 'uq_users_email'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "Asha", "Asha@Example.com", "pw123456", "", 4)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteRestrictedByDependents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM waste_logs WHERE user_id=(.+) FROM rewards WHERE user_id=").
		WithArgs("u1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"deps"}).AddRow(3))
	mock.ExpectRollback()

	repo := NewUserRepo(db)
	err = repo.Delete(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
