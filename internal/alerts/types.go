package alerts

import "time"

// Task type constants
const (
	TaskProposalReceived = "email:proposal_received"
	TaskProposalAccepted = "email:proposal_accepted"
	TaskProposalRejected = "email:proposal_rejected"
)

// Notification is the sink call contract: what the core hands over when it
// wants a user told about something. Delivery is best-effort everywhere.
type Notification struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url,omitempty"`
}

// EmailEnvelope is the rendered email for a queued notification task.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailTaskPayload is what the asynq worker consumes.
type EmailTaskPayload struct {
	UserID   string        `json:"user_id"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}
