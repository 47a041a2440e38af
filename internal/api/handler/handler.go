package handler

import (
	"context"
	"log/slog"

	"github.com/mdYeasin2001/hire-vibe-server/internal/api/auth"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/storage"
)

// JobStore is the job persistence surface the handlers depend on
type JobStore interface {
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.Job, error)
	ListJobsByCreator(ctx context.Context, email string) ([]model.Job, error)
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	CreateJob(ctx context.Context, job *model.Job) error
	UpsertJob(ctx context.Context, job *model.Job) error
	DeleteJobCascade(ctx context.Context, jobID string) (int64, error)
}

// ApplicationStore is the application persistence surface
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	FindApplication(ctx context.Context, jobID, email string) (*model.Application, error)
	GetApplicationByID(ctx context.Context, applicationID string) (*model.Application, error)
	ListApplicationsWithJobs(ctx context.Context, email, jobType string) ([]model.AppliedJob, error)
}

// EventPublisher publishes domain events. Satisfied by the RabbitMQ client.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Jobs         JobStore
	Applications ApplicationStore
	Publisher    EventPublisher
	Auth         *auth.Manager
}

// AuthHandler handles session issuance and revocation
type AuthHandler struct {
	logger *slog.Logger
	auth   *auth.Manager
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger: deps.Logger,
		auth:   deps.Auth,
	}
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger *slog.Logger
	jobs   JobStore
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// ApplicationHandler handles application submission and retrieval
type ApplicationHandler struct {
	logger       *slog.Logger
	jobs         JobStore
	applications ApplicationStore
	publisher    EventPublisher
}

// NewApplicationHandler creates a new ApplicationHandler instance
func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:       deps.Logger,
		jobs:         deps.Jobs,
		applications: deps.Applications,
		publisher:    deps.Publisher,
	}
}
