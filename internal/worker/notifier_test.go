package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mdYeasin2001/hire-vibe-server/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	jobs          map[string]domain.JobSummary
	notifications []domain.Notification
	insertErr     error
	getErr        error
}

func (f *fakeStore) GetJobSummary(_ context.Context, jobID string) (*domain.JobSummary, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &j, nil
}

func (f *fakeStore) InsertNotification(_ context.Context, n *domain.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.notifications = append(f.notifications, *n)
	return nil
}

func newTestWorker(store *fakeStore) *Worker {
	return NewWorker(&Config{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Storage:       store,
		Concurrency:   1,
		HandleTimeout: time.Second,
	})
}

func event(jobID string) *domain.EventMessage {
	return &domain.EventMessage{
		Event: domain.ApplicationEvent{
			ApplicationID:  uuid.New().String(),
			JobID:          jobID,
			ApplicantEmail: "b@x.com",
		},
		DeliveryTag: 1,
	}
}

func TestProcessEvent(t *testing.T) {
	jobID := uuid.New().String()

	t.Run("stores notification for the job creator", func(t *testing.T) {
		store := &fakeStore{jobs: map[string]domain.JobSummary{
			jobID: {JobID: jobID, JobTitle: "Backend Engineer", CreatorEmail: "a@x.com"},
		}}
		w := newTestWorker(store)

		err := w.processEvent(context.Background(), event(jobID))
		require.NoError(t, err)

		require.Len(t, store.notifications, 1)
		n := store.notifications[0]
		assert.NotEmpty(t, n.NotificationID)
		assert.Equal(t, "a@x.com", n.RecipientEmail)
		assert.Equal(t, jobID, n.JobID)
		assert.Equal(t, "b@x.com", n.ApplicantEmail)
		assert.Contains(t, n.Message, "Backend Engineer")
	})

	t.Run("job deleted before processing is dropped without error", func(t *testing.T) {
		store := &fakeStore{jobs: map[string]domain.JobSummary{}}
		w := newTestWorker(store)

		err := w.processEvent(context.Background(), event(uuid.New().String()))
		require.NoError(t, err)
		assert.Empty(t, store.notifications)
	})

	t.Run("transient lookup failure is retryable", func(t *testing.T) {
		store := &fakeStore{getErr: errors.New("connection reset")}
		w := newTestWorker(store)

		err := w.processEvent(context.Background(), event(jobID))
		require.Error(t, err)
		assert.True(t, shouldRequeue(err))
	})

	t.Run("transient insert failure is retryable", func(t *testing.T) {
		store := &fakeStore{
			jobs: map[string]domain.JobSummary{
				jobID: {JobID: jobID, JobTitle: "Backend Engineer", CreatorEmail: "a@x.com"},
			},
			insertErr: errors.New("connection reset"),
		}
		w := newTestWorker(store)

		err := w.processEvent(context.Background(), event(jobID))
		require.Error(t, err)
		assert.True(t, shouldRequeue(err))
	})
}

func TestDecodeEvent(t *testing.T) {
	valid := `{"application_id":"` + uuid.New().String() + `","job_id":"j1","applicant_email":"b@x.com"}`

	t.Run("valid", func(t *testing.T) {
		event, err := decodeEvent([]byte(valid))
		require.NoError(t, err)
		assert.Equal(t, "j1", event.JobID)
		assert.Equal(t, "b@x.com", event.ApplicantEmail)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"bad application id", `{"application_id":"x","job_id":"j1","applicant_email":"b@x.com"}`},
		{"missing job id", `{"application_id":"` + uuid.New().String() + `","applicant_email":"b@x.com"}`},
		{"missing email", `{"application_id":"` + uuid.New().String() + `","job_id":"j1"}`},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEvent([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidEvent)
		})
	}
}

func TestShouldRequeue(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable", domain.NewRetryableError(errors.New("db down")), true},
		{"invalid event", domain.ErrInvalidEvent, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRequeue(tt.err))
		})
	}
}
