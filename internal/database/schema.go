package database

import (
	"context"
	"database/sql"
)

// schema mirrors the entities of the waste-tracking domain. Entity ids are
// application-generated UUID strings, never auto-increment, so rows can be
// constructed fully before the insert.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          CHAR(36)     NOT NULL PRIMARY KEY,
		name        VARCHAR(120) NOT NULL DEFAULT '',
		email       VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		location    VARCHAR(255) NULL,
		created_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS waste_logs (
		id                  CHAR(36)     NOT NULL PRIMARY KEY,
		user_id             CHAR(36)     NOT NULL,
		waste_type          VARCHAR(50)  NOT NULL,
		weight              DOUBLE       NOT NULL,
		co2_saved           DOUBLE       NULL,
		disposal_method     VARCHAR(50)  NULL,
		collection_location VARCHAR(255) NULL,
		collection_status   VARCHAR(20)  NULL,
		collection_date     DATETIME     NULL,
		image_url           VARCHAR(512) NULL,
		created_at          DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_waste_logs_user (user_id),
		CONSTRAINT fk_waste_logs_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS recycling_centers (
		id              CHAR(36)     NOT NULL PRIMARY KEY,
		name            VARCHAR(120) NOT NULL,
		location        VARCHAR(255) NOT NULL,
		latitude        DOUBLE       NULL,
		longitude       DOUBLE       NULL,
		facility_type   VARCHAR(50)  NOT NULL DEFAULT 'recycling',
		contact         VARCHAR(120) NULL,
		operating_hours VARCHAR(120) NOT NULL DEFAULT 'Mon-Fri: 8:00 AM - 5:00 PM',
		accepted_types  TEXT         NULL,
		is_active       TINYINT(1)   NOT NULL DEFAULT 1
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS rewards (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		user_id    CHAR(36)     NOT NULL,
		badge_name VARCHAR(120) NOT NULL,
		points     INT          NOT NULL DEFAULT 0,
		awarded_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_rewards_user (user_id),
		CONSTRAINT fk_rewards_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS communities (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		name         VARCHAR(120) NOT NULL,
		impact_score DOUBLE       NOT NULL DEFAULT 0,
		created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS community_members (
		community_id CHAR(36) NOT NULL,
		user_id      CHAR(36) NOT NULL,
		joined_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (community_id, user_id),
		CONSTRAINT fk_members_community FOREIGN KEY (community_id) REFERENCES communities(id),
		CONSTRAINT fk_members_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         CHAR(36)    NOT NULL PRIMARY KEY,
		user_id    CHAR(36)    NOT NULL,
		token_hash CHAR(64)    NOT NULL,
		expires_at DATETIME    NOT NULL,
		revoked_at DATETIME    NULL,
		created_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables. Statements are idempotent so the
// server can run it unconditionally at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
