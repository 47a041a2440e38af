package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/domain"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
	"github.com/mdYeasin2001/hire-vibe-server/shared/postgresql"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches
const uniqueViolation = "23505"

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// JobFilter restricts job listings. Zero values mean no restriction.
type JobFilter struct {
	JobType string
	Search  string
}

const jobColumns = `
	job_id, job_title, job_type, creator_email,
	deadline, applicants_number, extra, created_at, updated_at
`

// ListJobs returns jobs matching the filter, newest first. No pagination:
// the listing endpoint returns the full result set.
func (s *Storage) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.JobType != "" {
		query += fmt.Sprintf(" AND job_type = $%d", argIdx)
		args = append(args, filter.JobType)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND job_title ILIKE '%%' || $%d || '%%'", argIdx)
		args = append(args, filter.Search)
		argIdx++
	}

	query += " ORDER BY created_at DESC, job_id DESC"

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListJobsByCreator returns the jobs posted by the given email, newest first
func (s *Storage) ListJobsByCreator(ctx context.Context, email string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE creator_email = $1 ORDER BY created_at DESC`

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, email); err != nil {
		return nil, fmt.Errorf("failed to list jobs by creator: %w", err)
	}
	return jobs, nil
}

// GetJobByID returns a single job or domain.ErrJobNotFound
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	var job model.Job
	if err := s.db.GetContext(ctx, &job, query, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// CreateJob inserts a new job
func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, job_title, job_type, creator_email,
			deadline, applicants_number, extra, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		job.JobID,
		job.JobTitle,
		job.JobType,
		job.CreatorEmail,
		job.Deadline,
		job.ApplicantsNumber,
		job.Extra,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// UpsertJob replaces all fields at job_id, inserting when absent
func (s *Storage) UpsertJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, job_title, job_type, creator_email,
			deadline, applicants_number, extra, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (job_id) DO UPDATE SET
			job_title         = EXCLUDED.job_title,
			job_type          = EXCLUDED.job_type,
			creator_email     = EXCLUDED.creator_email,
			deadline          = EXCLUDED.deadline,
			applicants_number = EXCLUDED.applicants_number,
			extra             = EXCLUDED.extra,
			updated_at        = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		job.JobID,
		job.JobTitle,
		job.JobType,
		job.CreatorEmail,
		job.Deadline,
		job.ApplicantsNumber,
		job.Extra,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}
	return nil
}

// DeleteJobCascade removes all applications referencing the job, then the job
// itself, in one transaction. Returns the number of deleted jobs (0 or 1).
func (s *Storage) DeleteJobCascade(ctx context.Context, jobID string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID); err != nil {
		return 0, fmt.Errorf("failed to delete applications: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

// CreateApplication inserts the application and bumps the job's applicant
// counter in one transaction. A unique (job_id, email) violation maps to
// domain.ErrAlreadyApplied so the race between the pre-insert check and the
// insert cannot produce duplicates.
func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO applications (application_id, job_id, email, extra, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insert,
		app.ApplicationID,
		app.JobID,
		app.Email,
		app.Extra,
		app.CreatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	increment := `
		UPDATE jobs
		SET applicants_number = applicants_number + 1,
		    updated_at = NOW()
		WHERE job_id = $1::uuid
	`
	if _, err := tx.ExecContext(ctx, increment, app.JobID); err != nil {
		return fmt.Errorf("failed to increment applicants number: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindApplication returns the application for (job_id, email), or nil when
// no such application exists
func (s *Storage) FindApplication(ctx context.Context, jobID, email string) (*model.Application, error) {
	query := `
		SELECT application_id, job_id, email, extra, created_at
		FROM applications
		WHERE job_id = $1 AND email = $2
	`

	var app model.Application
	if err := s.db.GetContext(ctx, &app, query, jobID, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// GetApplicationByID returns a single application or domain.ErrApplicationNotFound
func (s *Storage) GetApplicationByID(ctx context.Context, applicationID string) (*model.Application, error) {
	query := `
		SELECT application_id, job_id, email, extra, created_at
		FROM applications
		WHERE application_id = $1
	`

	var app model.Application
	if err := s.db.GetContext(ctx, &app, query, applicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// ListApplicationsWithJobs returns the applicant's applications, each merged
// with its job. Inner join: applications whose job no longer exists are
// dropped, not reported as errors. Optional exact filter on the joined job's
// type.
func (s *Storage) ListApplicationsWithJobs(ctx context.Context, email, jobType string) ([]model.AppliedJob, error) {
	query := `
		SELECT
			a.application_id, a.job_id, a.email, a.extra, a.created_at,
			j.job_id            AS "job.job_id",
			j.job_title         AS "job.job_title",
			j.job_type          AS "job.job_type",
			j.creator_email     AS "job.creator_email",
			j.deadline          AS "job.deadline",
			j.applicants_number AS "job.applicants_number",
			j.extra             AS "job.extra",
			j.created_at        AS "job.created_at",
			j.updated_at        AS "job.updated_at"
		FROM applications a
		JOIN jobs j ON j.job_id::text = a.job_id
		WHERE a.email = $1
	`
	args := []interface{}{email}

	if jobType != "" {
		query += " AND j.job_type = $2"
		args = append(args, jobType)
	}

	query += " ORDER BY a.created_at DESC"

	applied := []model.AppliedJob{}
	if err := s.db.SelectContext(ctx, &applied, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list applied jobs: %w", err)
	}
	return applied, nil
}
