package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/regen-eco/regen-server/internal/model"
)

// CenterRepo encapsulates all database queries for the recycling-center
// directory. Accepted waste types are a slice in the model and a single
// comma-joined column in storage; joinTypes/splitTypes translate at this
// boundary so callers only ever see the canonical slice form.
type CenterRepo struct{ DB *sql.DB }

func NewCenterRepo(db *sql.DB) *CenterRepo { return &CenterRepo{DB: db} }

const centerCols = "id,name,location,latitude,longitude,facility_type,contact,operating_hours,accepted_types,is_active"

// Create validates and inserts a center, applying the documented defaults
// for facility type and operating hours.
func (r *CenterRepo) Create(ctx context.Context, c *model.RecyclingCenter) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.FacilityType) == "" {
		c.FacilityType = "recycling"
	}
	if strings.TrimSpace(c.OperatingHours) == "" {
		c.OperatingHours = model.DefaultOperatingHours
	}
	c.AcceptedTypes = model.NormalizeAcceptedTypes(c.AcceptedTypes)
	c.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO recycling_centers
		 (id, name, location, latitude, longitude, facility_type, contact, operating_hours, accepted_types, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.Name, c.Location, c.Latitude, c.Longitude, c.FacilityType,
		c.Contact, c.OperatingHours, joinTypes(c.AcceptedTypes), c.IsActive)
	return err
}

// GetByID fetches a center by id.
func (r *CenterRepo) GetByID(ctx context.Context, id string) (model.RecyclingCenter, error) {
	var (
		c     model.RecyclingCenter
		types sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+centerCols+" FROM recycling_centers WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Location, &c.Latitude, &c.Longitude, &c.FacilityType,
			&c.Contact, &c.OperatingHours, &types, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecyclingCenter{}, ErrNotFound
	}
	if err != nil {
		return model.RecyclingCenter{}, err
	}
	c.AcceptedTypes = splitTypes(types)
	return c, nil
}

// CenterFilter narrows List results. Set fields combine with logical AND.
type CenterFilter struct {
	FacilityType string
	Accepts      string // a waste category the center must accept
	Active       *bool
}

// List returns directory entries matching the filter, ordered by name.
func (r *CenterRepo) List(ctx context.Context, f CenterFilter) ([]model.RecyclingCenter, error) {
	q := "SELECT " + centerCols + " FROM recycling_centers"
	var (
		where []string
		args  []any
	)
	if f.FacilityType != "" {
		where = append(where, "facility_type=?")
		args = append(args, f.FacilityType)
	}
	if f.Accepts != "" {
		where = append(where, "FIND_IN_SET(?, accepted_types) > 0")
		args = append(args, strings.ToLower(strings.TrimSpace(f.Accepts)))
	}
	if f.Active != nil {
		where = append(where, "is_active=?")
		args = append(args, *f.Active)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY name, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RecyclingCenter
	for rows.Next() {
		var (
			c     model.RecyclingCenter
			types sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Latitude, &c.Longitude, &c.FacilityType,
			&c.Contact, &c.OperatingHours, &types, &c.IsActive); err != nil {
			return nil, err
		}
		c.AcceptedTypes = splitTypes(types)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count reports the number of directory entries.
func (r *CenterRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM recycling_centers").Scan(&n)
	return n, err
}

// CenterPatch carries the optional fields of a partial update.
type CenterPatch struct {
	Name           *string
	Location       *string
	Latitude       *float64
	Longitude      *float64
	FacilityType   *string
	Contact        *string
	OperatingHours *string
	AcceptedTypes  []string // nil means unchanged; empty slice clears
	IsActive       *bool
}

// Update applies a partial update and returns the stored record.
func (r *CenterRepo) Update(ctx context.Context, id string, p CenterPatch) (model.RecyclingCenter, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return model.RecyclingCenter{}, &model.ValidationError{Field: "name", Reason: "required"}
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return model.RecyclingCenter{}, &model.ValidationError{Field: "location", Reason: "required"}
	}
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) { sets = append(sets, col+"=?"); args = append(args, v) }
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Latitude != nil {
		add("latitude", *p.Latitude)
	}
	if p.Longitude != nil {
		add("longitude", *p.Longitude)
	}
	if p.FacilityType != nil {
		add("facility_type", *p.FacilityType)
	}
	if p.Contact != nil {
		add("contact", *p.Contact)
	}
	if p.OperatingHours != nil {
		add("operating_hours", *p.OperatingHours)
	}
	if p.AcceptedTypes != nil {
		add("accepted_types", joinTypes(model.NormalizeAcceptedTypes(p.AcceptedTypes)))
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE recycling_centers SET "+strings.Join(sets, ",")+" WHERE id=?", args...); err != nil {
		return model.RecyclingCenter{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete hard-deletes a center.
func (r *CenterRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM recycling_centers WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func joinTypes(types []string) string {
	return strings.Join(types, ",")
}

func splitTypes(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return model.NormalizeAcceptedTypes([]string{s.String})
}
