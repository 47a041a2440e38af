package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mdYeasin2001/hire-vibe-server/internal/worker/domain"
)

// processEvent turns one application event into a stored notification for the
// job's creator. A job that was deleted between submission and processing is
// not an error: there is nobody left to notify, so the event is ACKed away.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	event := msg.Event

	w.logger.Info("Processing application event",
		slog.String("application_id", event.ApplicationID),
		slog.String("job_id", event.JobID),
	)

	handleCtx, cancel := context.WithTimeout(ctx, w.handleTimeout)
	defer cancel()

	job, err := w.storage.GetJobSummary(handleCtx, event.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			w.logger.Warn("Job gone before notification, dropping event",
				slog.String("job_id", event.JobID),
				slog.String("application_id", event.ApplicationID),
			)
			return nil
		}
		return domain.NewRetryableError(fmt.Errorf("failed to load job: %w", err))
	}

	notification := &domain.Notification{
		NotificationID: uuid.New().String(),
		RecipientEmail: job.CreatorEmail,
		JobID:          job.JobID,
		ApplicantEmail: event.ApplicantEmail,
		Message:        fmt.Sprintf("%s applied to your job %q", event.ApplicantEmail, job.JobTitle),
	}

	if err := w.storage.InsertNotification(handleCtx, notification); err != nil {
		return domain.NewRetryableError(fmt.Errorf("failed to store notification: %w", err))
	}

	return nil
}
