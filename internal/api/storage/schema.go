package storage

import (
	"context"
	"fmt"
)

// schema is applied at startup. applications.job_id is text on purpose: the
// data model keeps the reference loose, and the unique (job_id, email) pair
// backs the duplicate-application check at the storage layer.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	job_id            UUID PRIMARY KEY,
	job_title         TEXT NOT NULL,
	job_type          TEXT NOT NULL,
	creator_email     TEXT NOT NULL,
	deadline          DATE NOT NULL,
	applicants_number INTEGER NOT NULL DEFAULT 0 CHECK (applicants_number >= 0),
	extra             JSONB NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_jobs_creator_email ON jobs (creator_email);
CREATE INDEX IF NOT EXISTS idx_jobs_job_type ON jobs (job_type);

CREATE TABLE IF NOT EXISTS applications (
	application_id UUID PRIMARY KEY,
	job_id         TEXT NOT NULL,
	email          TEXT NOT NULL,
	extra          JSONB NOT NULL DEFAULT '{}',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (job_id, email)
);

CREATE INDEX IF NOT EXISTS idx_applications_email ON applications (email);

CREATE TABLE IF NOT EXISTS notifications (
	notification_id UUID PRIMARY KEY,
	recipient_email TEXT NOT NULL,
	job_id          TEXT NOT NULL,
	applicant_email TEXT NOT NULL,
	message         TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate creates the tables if they do not exist yet
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
