package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regen-eco/regen-server/internal/model"
)

// WasteLogRepo encapsulates all database queries for waste log entries.
type WasteLogRepo struct{ DB *sql.DB }

func NewWasteLogRepo(db *sql.DB) *WasteLogRepo { return &WasteLogRepo{DB: db} }

const wasteLogCols = "id,user_id,waste_type,weight,co2_saved,disposal_method," +
	"collection_location,collection_status,collection_date,image_url,created_at"

// Create validates the entry and inserts it inside one transaction. The
// owning user is checked first; if any constraint fails nothing is
// persisted. On success the generated id and stored timestamps are set on
// the record.
func (r *WasteLogRepo) Create(ctx context.Context, w *model.WasteLog) error {
	if err := w.Validate(); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id=?", w.UserID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	w.ID = uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO waste_logs
		 (id, user_id, waste_type, weight, co2_saved, disposal_method,
		  collection_location, collection_status, collection_date, image_url)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		w.ID, w.UserID, strings.ToLower(strings.TrimSpace(w.WasteType)), w.Weight, w.CO2Saved,
		w.DisposalMethod, w.CollectionLocation, w.CollectionStatus, w.CollectionDate, w.ImageURL)
	if err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT "+wasteLogCols+" FROM waste_logs WHERE id=?", w.ID).
		Scan(scanWasteLog(w)...); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID fetches a single waste log.
func (r *WasteLogRepo) GetByID(ctx context.Context, id string) (model.WasteLog, error) {
	var w model.WasteLog
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+wasteLogCols+" FROM waste_logs WHERE id=? LIMIT 1", id).
		Scan(scanWasteLog(&w)...)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WasteLog{}, ErrNotFound
	}
	return w, err
}

// WasteLogFilter narrows List results. Zero-valued fields are ignored and
// set fields combine with logical AND.
type WasteLogFilter struct {
	UserID    string
	WasteType string
	Status    string
}

// List returns waste logs matching the filter, newest first.
func (r *WasteLogRepo) List(ctx context.Context, f WasteLogFilter) ([]model.WasteLog, error) {
	q := "SELECT " + wasteLogCols + " FROM waste_logs"
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		where = append(where, "user_id=?")
		args = append(args, f.UserID)
	}
	if f.WasteType != "" {
		where = append(where, "waste_type=?")
		args = append(args, strings.ToLower(strings.TrimSpace(f.WasteType)))
	}
	if f.Status != "" {
		where = append(where, "collection_status=?")
		args = append(args, f.Status)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WasteLog
	for rows.Next() {
		var w model.WasteLog
		if err := rows.Scan(scanWasteLog(&w)...); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Recent returns the most recent entries across all users.
func (r *WasteLogRepo) Recent(ctx context.Context, limit int) ([]model.WasteLog, error) {
	if limit < 1 {
		limit = 5
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+wasteLogCols+" FROM waste_logs ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WasteLog
	for rows.Next() {
		var w model.WasteLog
		if err := rows.Scan(scanWasteLog(&w)...); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// WasteLogPatch carries the optional fields of a partial update. Nil
// pointers mean "leave unchanged".
type WasteLogPatch struct {
	WasteType          *string
	Weight             *float64
	CO2Saved           *float64
	DisposalMethod     *string
	CollectionLocation *string
	CollectionStatus   *string
	CollectionDate     *time.Time
	ImageURL           *string
}

// Update applies a partial update and returns the stored record. Supplied
// fields are still validated: a weight must stay positive and a status must
// be a known value.
func (r *WasteLogRepo) Update(ctx context.Context, id string, p WasteLogPatch) (model.WasteLog, error) {
	if p.Weight != nil && *p.Weight <= 0 {
		return model.WasteLog{}, &model.ValidationError{Field: "weight", Reason: "must be a positive number"}
	}
	if p.WasteType != nil && strings.TrimSpace(*p.WasteType) == "" {
		return model.WasteLog{}, &model.ValidationError{Field: "waste_type", Reason: "required"}
	}
	if p.CollectionStatus != nil {
		switch *p.CollectionStatus {
		case model.CollectionPending, model.CollectionScheduled, model.CollectionCollected:
		default:
			return model.WasteLog{}, &model.ValidationError{Field: "collection_status", Reason: "must be pending, scheduled or collected"}
		}
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) { sets = append(sets, col+"=?"); args = append(args, v) }
	if p.WasteType != nil {
		add("waste_type", strings.ToLower(strings.TrimSpace(*p.WasteType)))
	}
	if p.Weight != nil {
		add("weight", *p.Weight)
	}
	if p.CO2Saved != nil {
		add("co2_saved", *p.CO2Saved)
	}
	if p.DisposalMethod != nil {
		add("disposal_method", *p.DisposalMethod)
	}
	if p.CollectionLocation != nil {
		add("collection_location", *p.CollectionLocation)
	}
	if p.CollectionStatus != nil {
		add("collection_status", *p.CollectionStatus)
	}
	if p.CollectionDate != nil {
		add("collection_date", *p.CollectionDate)
	}
	if p.ImageURL != nil {
		add("image_url", *p.ImageURL)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE waste_logs SET "+strings.Join(sets, ",")+" WHERE id=?", args...); err != nil {
		return model.WasteLog{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete hard-deletes a waste log.
func (r *WasteLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM waste_logs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanWasteLog returns scan destinations in wasteLogCols order.
func scanWasteLog(w *model.WasteLog) []any {
	return []any{
		&w.ID, &w.UserID, &w.WasteType, &w.Weight, &w.CO2Saved, &w.DisposalMethod,
		&w.CollectionLocation, &w.CollectionStatus, &w.CollectionDate, &w.ImageURL, &w.CreatedAt,
	}
}
