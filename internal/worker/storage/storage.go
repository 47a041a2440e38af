package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/mdYeasin2001/hire-vibe-server/internal/worker/domain"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// GetJobSummary retrieves the job fields the notifier needs
func (s *Storage) GetJobSummary(ctx context.Context, jobID string) (*domain.JobSummary, error) {
	query := `
		SELECT job_id, job_title, creator_email
		FROM jobs
		WHERE job_id::text = $1
	`

	var job domain.JobSummary
	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// InsertNotification stores a notification for a job creator
func (s *Storage) InsertNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_email, job_id, applicant_email, message)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		n.NotificationID,
		n.RecipientEmail,
		n.JobID,
		n.ApplicantEmail,
		n.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	s.logger.Info("Notification stored",
		slog.String("notification_id", n.NotificationID),
		slog.String("recipient_email", n.RecipientEmail),
		slog.String("job_id", n.JobID),
	)

	return nil
}
