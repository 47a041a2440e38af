package dto

import (
	"fmt"
	"time"

	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
)

// DateLayout is the wire format for job deadlines
const DateLayout = "2006-01-02"

// JobPayload carries the known job fields of a create or upsert request.
// Anything else in the body is preserved in the extra column.
type JobPayload struct {
	JobTitle         string `json:"job_title"`
	JobType          string `json:"job_type"`
	CreatorEmail     string `json:"creator_email"`
	Deadline         string `json:"deadline"`
	ApplicantsNumber int    `json:"applicants_number"`
}

// KnownJobFields are the JobPayload keys split out of the raw body
var KnownJobFields = []string{
	"job_id", "job_title", "job_type", "creator_email",
	"deadline", "applicants_number", "created_at", "updated_at",
}

// Validate checks the required job fields and parses the deadline
func (p *JobPayload) Validate() (time.Time, error) {
	if p.JobTitle == "" {
		return time.Time{}, fmt.Errorf("job_title is required")
	}
	if p.JobType == "" {
		return time.Time{}, fmt.Errorf("job_type is required")
	}
	if p.CreatorEmail == "" {
		return time.Time{}, fmt.Errorf("creator_email is required")
	}
	if p.ApplicantsNumber < 0 {
		return time.Time{}, fmt.Errorf("applicants_number cannot be negative")
	}

	deadline, err := time.Parse(DateLayout, p.Deadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline must be a date in %s format", DateLayout)
	}
	return deadline, nil
}

// ListJobsRequest holds the job listing filters
type ListJobsRequest struct {
	JobType string `form:"job_type"`
	Search  string `form:"search"`
}

// JobJSON renders a job as a flat JSON object, merging the pass-through
// fields back alongside the known columns
func JobJSON(j *model.Job) map[string]any {
	out := make(map[string]any, len(j.Extra)+8)
	for k, v := range j.Extra {
		out[k] = v
	}
	out["job_id"] = j.JobID
	out["job_title"] = j.JobTitle
	out["job_type"] = j.JobType
	out["creator_email"] = j.CreatorEmail
	out["deadline"] = j.Deadline.Format(DateLayout)
	out["applicants_number"] = j.ApplicantsNumber
	out["created_at"] = j.CreatedAt.Format(time.RFC3339)
	out["updated_at"] = j.UpdatedAt.Format(time.RFC3339)
	return out
}

// JobsJSON renders a job list
func JobsJSON(jobs []model.Job) []map[string]any {
	out := make([]map[string]any, len(jobs))
	for i := range jobs {
		out[i] = JobJSON(&jobs[i])
	}
	return out
}
