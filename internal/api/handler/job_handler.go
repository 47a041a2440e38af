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
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/storage"
)

// ListJobs handles GET /jobs
// Lists jobs with optional job_type and case-insensitive title search filters
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid query parameters",
		})
		return
	}

	jobs, err := h.jobs.ListJobs(c.Request.Context(), storage.JobFilter{
		JobType: req.JobType,
		Search:  req.Search,
	})
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobsJSON(jobs))
}

// GetJob handles GET /jobs/:id
// A malformed id is treated the same as an unknown one: not found.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "job not found",
		})
		return
	}

	job, err := h.jobs.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "job not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobJSON(job))
}

// readJobPayload decodes the body into the known job fields plus the opaque
// remainder
func readJobPayload(c *gin.Context) (*dto.JobPayload, time.Time, model.Extra, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return nil, time.Time{}, nil, false
	}

	var payload dto.JobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return nil, time.Time{}, nil, false
	}

	deadline, err := payload.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return nil, time.Time{}, nil, false
	}

	extra, err := dto.ExtraFields(raw, dto.KnownJobFields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return nil, time.Time{}, nil, false
	}

	return &payload, deadline, extra, true
}

// CreateJob handles POST /jobs
// Inserts the posting and returns the created record with its new id
func (h *JobHandler) CreateJob(c *gin.Context) {
	payload, deadline, extra, ok := readJobPayload(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	job := model.Job{
		JobID:            uuid.New().String(),
		JobTitle:         payload.JobTitle,
		JobType:          payload.JobType,
		CreatorEmail:     payload.CreatorEmail,
		Deadline:         deadline,
		ApplicantsNumber: payload.ApplicantsNumber,
		Extra:            extra,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.jobs.CreateJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	h.logger.Info("Job created",
		slog.String("job_id", job.JobID),
		slog.String("creator_email", job.CreatorEmail),
	)

	c.JSON(http.StatusCreated, dto.JobJSON(&job))
}

// ListMine handles GET /jobs/get-mine/:email
// Returns the caller's own postings; the path email must match the session
func (h *JobHandler) ListMine(c *gin.Context) {
	tokenEmail, _ := auth.EmailFrom(c)
	email := c.Param("email")
	if tokenEmail != email {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "access forbidden",
		})
		return
	}

	jobs, err := h.jobs.ListJobsByCreator(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list jobs by creator", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobsJSON(jobs))
}

// UpdateJob handles PUT /jobs/:id
// Full-document upsert: replaces every field at id, inserting when absent
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid job id",
		})
		return
	}

	payload, deadline, extra, ok := readJobPayload(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	job := model.Job{
		JobID:            jobID,
		JobTitle:         payload.JobTitle,
		JobType:          payload.JobType,
		CreatorEmail:     payload.CreatorEmail,
		Deadline:         deadline,
		ApplicantsNumber: payload.ApplicantsNumber,
		Extra:            extra,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.jobs.UpsertJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to upsert job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobJSON(&job))
}

// DeleteJob handles DELETE /jobs/:id
// Deletes the applications referencing the job, then the job itself
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid job id",
		})
		return
	}

	deleted, err := h.jobs.DeleteJobCascade(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to delete job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "job not found",
		})
		return
	}

	h.logger.Info("Job deleted", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
