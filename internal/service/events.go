package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/observability"
)

// SubmissionEvent is published when a submission changes lifecycle state so
// teacher-side consumers can react without polling.
type SubmissionEvent struct {
	SubmissionID uint      `json:"submission_id"`
	AssignmentID uint      `json:"assignment_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher emits submission lifecycle events. Publishing is best-effort
// and never affects the triggering request.
type EventPublisher interface {
	PublishStatus(submissionID, assignmentID uint, status string)
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewEventPublisher builds a NATS-backed publisher. A nil connection yields a
// publisher that silently drops events.
func NewEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) EventPublisher {
	if subject == "" {
		subject = "buddybud.submissions"
	}

	return &natsEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "events").Logger(),
	}
}

func (p *natsEventPublisher) PublishStatus(submissionID, assignmentID uint, status string) {
	observability.SubmissionTransitions().WithLabelValues(status).Inc()

	if p.conn == nil {
		return
	}

	event := SubmissionEvent{
		SubmissionID: submissionID,
		AssignmentID: assignmentID,
		Status:       status,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode submission event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Uint("submission_id", submissionID).Msg("failed to publish submission event")
	}
}
