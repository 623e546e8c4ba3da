package model

import "time"

// Community is a named group of users with an aggregate impact score.
// Membership is many-to-many via the community_members join table.
type Community struct {
	ID          string
	Name        string
	ImpactScore float64
	CreatedAt   time.Time
}

// CommunityMember carries the joined-at timestamp for one membership row.
type CommunityMember struct {
	CommunityID string
	UserID      string
	JoinedAt    time.Time
}
