package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/regen-eco/regen-server/internal/config"
	"github.com/regen-eco/regen-server/internal/repository"
	"github.com/regen-eco/regen-server/internal/utils"
)

func loginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewAuthHandler(config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: bcrypt.MinCost},
		repository.NewUserRepo(conn), repository.NewTokenRepo(conn))
	return h, mock, func() { conn.Close() }
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=?").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns()))

	c, rec := loginContext(t, `{"email":"ghost@example.com","password":"whatever"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("right-password", bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=?").
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns()).
			AddRow("u1", "Asha", "asha@example.com", hash, nil, now, now))

	c, rec := loginContext(t, `{"email":"asha@example.com","password":"wrong-password"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginStorageFailureIsServerError(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=?").
		WillReturnError(errors.New("dial tcp: connection refused"))

	c, rec := loginContext(t, `{"email":"asha@example.com","password":"right-password"}`)
	require.NoError(t, h.Login(c))

	// A database outage is a 500, never a credential rejection.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func userScanColumns() []string {
	return []string{"id", "name", "email", "password_hash", "location", "created_at", "updated_at"}
}
