package model

import "time"

// User represents an account record as stored in the `users` table.
// Ids are UUID strings generated at construction time. The password is
// stored only as a bcrypt hash; handlers never see or return it.
//
// Fields:
//
//	ID           – UUID primary key.
//	Name         – display name, may be empty.
//	Email        – unique email address, normalized to lower case.
//	PasswordHash – bcrypt hashed password.
//	Location     – optional free-form location string.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
