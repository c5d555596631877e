package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fixia-ar/fixia/internal/db"
)

// Sink delivers user notifications. Callers in the core must treat errors as
// non-fatal: log and move on, never fail the triggering operation.
type Sink interface {
	Notify(ctx context.Context, userID string, n Notification) error
}

// QueueSink stores an in-app notification row and enqueues an email task for
// the asynq worker. It is the production Sink.
type QueueSink struct {
	client *asynq.Client
}

// NewQueueSink wires the sink to the shared asynq client. Init must have run.
func NewQueueSink() *QueueSink {
	return &QueueSink{client: ensureClient()}
}

// Notify records the notification and schedules the email. The in-app row is
// the primary artifact; a queue failure after the insert is still an error so
// the caller can log it, but the row remains.
func (s *QueueSink) Notify(ctx context.Context, userID string, n Notification) error {
	if err := insertNotification(ctx, userID, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	var email string
	err := db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		return fmt.Errorf("lookup recipient: %w", err)
	}

	payload := EmailTaskPayload{
		UserID: userID,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: n.Title,
			Body:    renderBody(n),
		},
		SentAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(n.Type, b)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue("emails")); err != nil {
		return fmt.Errorf("enqueue %s: %w", n.Type, err)
	}
	return nil
}

func insertNotification(ctx context.Context, userID string, n Notification) error {
	_, err := db.Conn.Exec(ctx,
		`INSERT INTO notifications (user_id, type, title, body, action_url)
         VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		userID, n.Type, n.Title, n.Message, n.ActionURL,
	)
	return err
}

func renderBody(n Notification) string {
	if n.ActionURL == "" {
		return n.Message
	}
	return fmt.Sprintf("%s\n\nVer en Fixia: %s", n.Message, n.ActionURL)
}
