package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tribu-app/tribu/common/logger"
	"github.com/tribu-app/tribu/common/queue"
)

// AuditTopic is the queue topic carrying audit events
const AuditTopic = "audit"

// AuditEvent records one mutating operation for the audit trail
type AuditEvent struct {
	ID         uuid.UUID `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditPublisher emits audit events for mutating operations. Publishing is
// best-effort: a failed audit write never fails the mutation it describes.
type AuditPublisher struct {
	queue queue.Queue
	log   *logger.Logger
}

// NewAuditPublisher creates a new audit publisher
func NewAuditPublisher(q queue.Queue, log *logger.Logger) *AuditPublisher {
	return &AuditPublisher{
		queue: q,
		log:   log,
	}
}

// Record publishes one audit event
func (p *AuditPublisher) Record(ctx context.Context, actorID, action, entityID, details string) {
	event := AuditEvent{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityID:   entityID,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal audit event", "action", action, "error", err)
		return
	}

	if err := p.queue.Publish(ctx, AuditTopic, entityID, payload); err != nil {
		p.log.Error("failed to publish audit event", "action", action, "error", err)
	}
}

// StartLogSink subscribes to the audit topic and writes entries to the log.
// A dedicated audit-log writer can replace this sink behind the same topic.
func (p *AuditPublisher) StartLogSink(ctx context.Context) error {
	return p.queue.Subscribe(ctx, AuditTopic, func(ctx context.Context, key string, value []byte) error {
		event := AuditEvent{}
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}

		p.log.Info("audit",
			"actor_id", event.ActorID,
			"action", event.Action,
			"entity_id", event.EntityID,
			"details", event.Details,
			"occurred_at", event.OccurredAt,
		)
		return nil
	})
}
