package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/auth"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/domain"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/dto"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
)

// ApplicationEvent is published after a successful application submission
type ApplicationEvent struct {
	ApplicationID  string `json:"application_id"`
	JobID          string `json:"job_id"`
	ApplicantEmail string `json:"applicant_email"`
}

// Apply handles POST /applications
// Validation short-circuits in order: job exists, not the caller's own job,
// deadline not passed (end-of-day inclusive), not already applied.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	tokenEmail, _ := auth.EmailFrom(c)

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	var payload dto.ApplyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := uuid.Parse(payload.JobID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	job, err := h.jobs.GetJobByID(c.Request.Context(), payload.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	if tokenEmail == job.CreatorEmail {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "you can't apply to your own created job",
		})
		return
	}

	if deadlinePassed(job.Deadline, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "deadline has expired",
		})
		return
	}

	existing, err := h.applications.FindApplication(c.Request.Context(), payload.JobID, payload.Email)
	if err != nil {
		h.logger.Error("Failed to check existing application", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "you have already applied to this job",
		})
		return
	}

	extra, err := dto.ExtraFields(raw, dto.KnownApplicationFields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	app := model.Application{
		ApplicationID: uuid.New().String(),
		JobID:         payload.JobID,
		Email:         payload.Email,
		Extra:         extra,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.applications.CreateApplication(c.Request.Context(), &app); err != nil {
		// The unique constraint catches the race two concurrent applies can
		// win past the pre-insert check
		if errors.Is(err, domain.ErrAlreadyApplied) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "you have already applied to this job",
			})
			return
		}
		h.logger.Error("Failed to create application", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	h.publishEvent(c, &app)

	c.JSON(http.StatusCreated, dto.ApplicationJSON(&app))
}

// deadlinePassed reports whether the deadline day has fully elapsed. Applying
// on the deadline date itself still succeeds.
func deadlinePassed(deadline, now time.Time) bool {
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return deadlineDay.Before(today)
}

// publishEvent notifies the worker about a submitted application. Best
// effort: a publish failure is logged, never surfaced to the client.
func (h *ApplicationHandler) publishEvent(c *gin.Context, app *model.Application) {
	if h.publisher == nil {
		return
	}

	event := ApplicationEvent{
		ApplicationID:  app.ApplicationID,
		JobID:          app.JobID,
		ApplicantEmail: app.Email,
	}
	body, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal application event", slog.String("error", err.Error()))
		return
	}

	if err := h.publisher.Publish(c.Request.Context(), body, "application/json"); err != nil {
		h.logger.Error("Failed to publish application event",
			slog.String("application_id", app.ApplicationID),
			slog.String("error", err.Error()),
		)
	}
}

// ListApplications handles GET /applications/:email
// Returns the caller's applications joined with their jobs, optionally
// filtered by the joined job's type
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	tokenEmail, _ := auth.EmailFrom(c)
	email := c.Param("email")
	if tokenEmail != email {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "access forbidden",
		})
		return
	}

	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters"})
		return
	}

	applied, err := h.applications.ListApplicationsWithJobs(c.Request.Context(), email, req.JobType)
	if err != nil {
		h.logger.Error("Failed to list applied jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.AppliedJobsJSON(applied))
}

// GetApplication handles GET /appliedJob/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	applicationID := c.Param("id")
	if _, err := uuid.Parse(applicationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "application not found",
		})
		return
	}

	app, err := h.applications.GetApplicationByID(c.Request.Context(), applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "application not found",
			})
			return
		}
		h.logger.Error("Failed to get application", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationJSON(app))
}
