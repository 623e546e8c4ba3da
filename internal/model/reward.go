package model

import "time"

// Reward is a badge granted to a user with an attached point value. Points
// from rewards are added on top of the calculated activity points when
// building dashboard stats.
type Reward struct {
	ID        string
	UserID    string
	BadgeName string
	Points    int
	AwardedAt time.Time
}

// Validate checks the creation invariants for a reward.
func (r *Reward) Validate() error {
	if r.UserID == "" {
		return &ValidationError{Field: "user_id", Reason: "required"}
	}
	if r.BadgeName == "" {
		return &ValidationError{Field: "badge_name", Reason: "required"}
	}
	if r.Points < 0 {
		return &ValidationError{Field: "points", Reason: "must not be negative"}
	}
	return nil
}
