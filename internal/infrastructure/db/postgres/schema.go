package postgres

import (
	"context"
	"fmt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL DEFAULT '',
		firm             TEXT NOT NULL DEFAULT '',
		city             TEXT NOT NULL DEFAULT '',
		district         TEXT NOT NULL DEFAULT '',
		dob              TEXT NOT NULL DEFAULT '',
		app_install_date TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		has_full_access  BOOLEAN NOT NULL DEFAULT FALSE,
		status           TEXT NOT NULL DEFAULT 'active',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login_at    TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC);

	CREATE TABLE IF NOT EXISTS otp_requests (
		id          UUID PRIMARY KEY,
		user_phone  TEXT NOT NULL,
		admin_phone TEXT NOT NULL,
		otp         TEXT NOT NULL,
		expires_at  TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_otp_lookup ON otp_requests (user_phone, admin_phone, otp);
	CREATE INDEX IF NOT EXISTS idx_otp_admin_latest ON otp_requests (admin_phone, created_at DESC);
`

// EnsureSchema creates the tables used by the postgres store if missing.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
