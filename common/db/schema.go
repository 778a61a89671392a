package db

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so Migrate can run on every startup.
// Edge rows reference family_member without ON DELETE CASCADE: the member
// repository removes edges and the member inside one transaction, keeping
// the cascade visible to the application layer.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS family_member (
		id           UUID PRIMARY KEY,
		profile_id   UUID,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		maiden_name  TEXT,
		gender       TEXT NOT NULL,
		birth_date   TEXT,
		birth_place  TEXT,
		death_date   TEXT,
		death_place  TEXT,
		bio          TEXT,
		photo_url    TEXT,
		is_alive     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS family_relationship (
		id                   UUID PRIMARY KEY,
		from_member_id       UUID NOT NULL REFERENCES family_member(id),
		to_member_id         UUID NOT NULL REFERENCES family_member(id),
		relationship_type    TEXT NOT NULL CHECK (relationship_type IN ('parent', 'child', 'spouse', 'sibling', 'other')),
		relationship_details TEXT,
		start_date           TEXT,
		end_date             TEXT,
		created_at           TIMESTAMPTZ NOT NULL,
		updated_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_family_relationship_from ON family_relationship (from_member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_family_relationship_to ON family_relationship (to_member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_family_member_profile ON family_member (profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_family_member_name ON family_member (last_name, first_name)`,
}

// Migrate creates the schema if it does not exist yet
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	db.log.Info("database schema up to date")
	return nil
}
