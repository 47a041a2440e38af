package dto

import (
	"fmt"
	"time"

	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
)

// ApplyPayload carries the known fields of an application submission
type ApplyPayload struct {
	JobID string `json:"job_id"`
	Email string `json:"email"`
}

// KnownApplicationFields are the ApplyPayload keys split out of the raw body
var KnownApplicationFields = []string{
	"application_id", "job_id", "email", "created_at",
}

// Validate checks the required application fields
func (p *ApplyPayload) Validate() error {
	if p.JobID == "" {
		return fmt.Errorf("job_id is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// ListApplicationsRequest holds the applied-jobs listing filter
type ListApplicationsRequest struct {
	JobType string `form:"job_type"`
}

// ApplicationJSON renders an application as a flat JSON object
func ApplicationJSON(a *model.Application) map[string]any {
	out := make(map[string]any, len(a.Extra)+4)
	for k, v := range a.Extra {
		out[k] = v
	}
	out["application_id"] = a.ApplicationID
	out["job_id"] = a.JobID
	out["email"] = a.Email
	out["created_at"] = a.CreatedAt.Format(time.RFC3339)
	return out
}

// AppliedJobJSON renders an application with its joined job nested under "job"
func AppliedJobJSON(aj *model.AppliedJob) map[string]any {
	out := ApplicationJSON(&aj.Application)
	out["job"] = JobJSON(&aj.Job)
	return out
}

// AppliedJobsJSON renders an applied-jobs list
func AppliedJobsJSON(applied []model.AppliedJob) []map[string]any {
	out := make([]map[string]any, len(applied))
	for i := range applied {
		out[i] = AppliedJobJSON(&applied[i])
	}
	return out
}
