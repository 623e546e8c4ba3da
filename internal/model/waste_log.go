package model

import "time"

// Collection status values for a waste log. Stored as plain strings; the
// zero value means no collection has been requested.
const (
	CollectionPending   = "pending"
	CollectionScheduled = "scheduled"
	CollectionCollected = "collected"
)

// WasteLog is a single recycling entry owned by a user. Weight and waste
// type are required at creation; everything else is optional. CO2Saved is
// the estimated avoided emissions in kilograms and feeds the point economy.
type WasteLog struct {
	ID                 string
	UserID             string
	WasteType          string
	Weight             float64
	CO2Saved           *float64
	DisposalMethod     *string
	CollectionLocation *string
	CollectionStatus   *string
	CollectionDate     *time.Time
	ImageURL           *string
	CreatedAt          time.Time
}

// Validate checks the creation invariants: an owner, a category and a
// positive weight must all be present. Absence is a validation failure,
// never a silently stored default.
func (w *WasteLog) Validate() error {
	if w.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "required"}
	}
	if w.WasteType == "" {
		return &ValidationError{Field: "waste_type", Reason: "required"}
	}
	if w.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be a positive number"}
	}
	if w.CollectionStatus != nil {
		switch *w.CollectionStatus {
		case CollectionPending, CollectionScheduled, CollectionCollected:
		default:
			return &ValidationError{Field: "collection_status", Reason: "must be pending, scheduled or collected"}
		}
	}
	return nil
}
