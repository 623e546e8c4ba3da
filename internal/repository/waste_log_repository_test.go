package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regen-eco/regen-server/internal/model"
)

func wasteLogColumns() []string {
	return []string{
		"id", "user_id", "waste_type", "weight", "co2_saved", "disposal_method",
		"collection_location", "collection_status", "collection_date", "image_url", "created_at",
	}
}

func TestWasteLogCreateMissingWeightPersistsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWasteLogRepo(db)
	w := model.WasteLog{UserID: "u1", WasteType: "plastic"} // no weight
	err = repo.Create(context.Background(), &w)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "weight", ve.Field)
	// Validation fails before any statement reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogCreateUnknownOwnerRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE id=?")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	repo := NewWasteLogRepo(db)
	w := model.WasteLog{UserID: "ghost", WasteType: "plastic", Weight: 1.5}
	err = repo.Create(context.Background(), &w)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogCreateCommitsValidEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE id=?")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO waste_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM waste_logs WHERE id=?").
		WillReturnRows(sqlmock.NewRows(wasteLogColumns()).
			AddRow("log-1", "u1", "plastic", 1.5, nil, nil, nil, nil, nil, nil, now))
	mock.ExpectCommit()

	repo := NewWasteLogRepo(db)
	w := model.WasteLog{UserID: "u1", WasteType: "Plastic ", Weight: 1.5}
	require.NoError(t, repo.Create(context.Background(), &w))

	assert.Equal(t, "log-1", w.ID)
	assert.Equal(t, now, w.CreatedAt)
	assert.Nil(t, w.CO2Saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogUpdateRejectsBadPatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWasteLogRepo(db)
	var ve *model.ValidationError

	zero := 0.0
	_, err = repo.Update(context.Background(), "log-1", WasteLogPatch{Weight: &zero})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "weight", ve.Field)

	bad := "done"
	_, err = repo.Update(context.Background(), "log-1", WasteLogPatch{CollectionStatus: &bad})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "collection_status", ve.Field)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogUpdateTouchesOnlySuppliedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	status := model.CollectionCollected
	mock.ExpectExec(regexp.QuoteMeta("UPDATE waste_logs SET collection_status=? WHERE id=?")).
		WithArgs(status, "log-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM waste_logs WHERE id=?").
		WithArgs("log-1").
		WillReturnRows(sqlmock.NewRows(wasteLogColumns()).
			AddRow("log-1", "u1", "plastic", 1.5, nil, nil, nil, status, nil, nil, now))

	repo := NewWasteLogRepo(db)
	got, err := repo.Update(context.Background(), "log-1", WasteLogPatch{CollectionStatus: &status})
	require.NoError(t, err)

	require.NotNil(t, got.CollectionStatus)
	assert.Equal(t, status, *got.CollectionStatus)
	assert.Equal(t, "plastic", got.WasteType) // untouched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogListComposedFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	status := model.CollectionPending
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+wasteLogCols+" FROM waste_logs WHERE user_id=? AND waste_type=? AND collection_status=? ORDER BY created_at DESC, id")).
		WithArgs("u1", "plastic", status).
		WillReturnRows(sqlmock.NewRows(wasteLogColumns()).
			AddRow("log-1", "u1", "plastic", 1.5, nil, nil, nil, status, nil, nil, now))

	repo := NewWasteLogRepo(db)
	// All three filters combine with AND; the category is normalized first.
	logs, err := repo.List(context.Background(), WasteLogFilter{
		UserID:    "u1",
		WasteType: " Plastic",
		Status:    status,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "log-1", logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWasteLogDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM waste_logs WHERE id=?")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewWasteLogRepo(db)
	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
