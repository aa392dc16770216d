package types

import "time"

// EmailJob is the SQS payload sent from the API handlers to the email worker.
// This struct is the transport envelope carrying everything needed to render
// and deliver one transactional email. JSON tags use snake_case to keep the
// queue payloads consistent with the HTTP API.
type EmailJob struct {
	JobID string    `json:"job_id"`
	Kind  EmailKind `json:"kind"`

	// Recipient
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name,omitempty"`

	// Template data. Keys depend on Kind; the renderer validates that the
	// required keys for the template are present.
	Data map[string]string `json:"data,omitempty"`

	// Retry state carried across the SQS publish cycle. Incremented by the
	// worker on transient failures before re-publishing.
	RetryCount int `json:"retry_count"`

	// Observability
	RequestID  string    `json:"request_id,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
