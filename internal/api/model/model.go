package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Extra holds the free-form posting/application fields (salary, description,
// resume link, ...) that are passed through opaquely. Stored as JSONB.
type Extra map[string]any

// Value implements driver.Valuer
func (e Extra) Value() (driver.Value, error) {
	if e == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner
func (e *Extra) Scan(src any) error {
	if src == nil {
		*e = Extra{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Extra: %T", src)
	}

	return json.Unmarshal(data, e)
}

// Job is a posting in the jobs table
type Job struct {
	JobID            string    `db:"job_id"`
	JobTitle         string    `db:"job_title"`
	JobType          string    `db:"job_type"`
	CreatorEmail     string    `db:"creator_email"`
	Deadline         time.Time `db:"deadline"`
	ApplicantsNumber int       `db:"applicants_number"`
	Extra            Extra     `db:"extra"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Application is a submission in the applications table. JobID is stored as
// text rather than a foreign key, matching the loose coupling of the data
// model; the join against jobs casts the job's uuid to text.
type Application struct {
	ApplicationID string    `db:"application_id"`
	JobID         string    `db:"job_id"`
	Email         string    `db:"email"`
	Extra         Extra     `db:"extra"`
	CreatedAt     time.Time `db:"created_at"`
}

// AppliedJob is an application joined with its job
type AppliedJob struct {
	Application
	Job Job `db:"job"`
}
