package domain

// ApplicationEvent is the message the API service publishes when an
// application is submitted
type ApplicationEvent struct {
	ApplicationID  string `json:"application_id"`
	JobID          string `json:"job_id"`
	ApplicantEmail string `json:"applicant_email"`
}

// EventMessage pairs a decoded event with its broker delivery tag so the
// worker pool can ACK or NACK after processing
type EventMessage struct {
	Event       ApplicationEvent
	DeliveryTag uint64
}

// JobSummary is the slice of a job the notifier needs
type JobSummary struct {
	JobID        string `db:"job_id"`
	JobTitle     string `db:"job_title"`
	CreatorEmail string `db:"creator_email"`
}

// Notification is a stored message for a job creator
type Notification struct {
	NotificationID string `db:"notification_id"`
	RecipientEmail string `db:"recipient_email"`
	JobID          string `db:"job_id"`
	ApplicantEmail string `db:"applicant_email"`
	Message        string `db:"message"`
}
