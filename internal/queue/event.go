// Package queue defines message payloads exchanged over the message broker.
package queue

// WasteLoggedEvent is published after a waste log entry is successfully
// persisted. Downstream consumers can notify, schedule collections or feed
// analytics without querying the primary database.
type WasteLoggedEvent struct {
	LogID     string   `json:"log_id"`
	UserID    string   `json:"user_id"`
	WasteType string   `json:"waste_type"`
	Weight    float64  `json:"weight"`
	CO2Saved  *float64 `json:"co2_saved,omitempty"`
	LoggedAt  string   `json:"logged_at"`
}

// RewardGrantedEvent is published when a badge is granted to a user.
type RewardGrantedEvent struct {
	RewardID  string `json:"reward_id"`
	UserID    string `json:"user_id"`
	BadgeName string `json:"badge_name"`
	Points    int    `json:"points"`
	AwardedAt string `json:"awarded_at"`
}
