// Package events publishes the outcome of every resolved reservation request.
package events

import (
	"context"
	"time"

	"classbook/internal/reservations/scheduler"
	"classbook/pkg/kafka"
	"classbook/pkg/logger"
	"classbook/pkg/model"
)

const (
	TypeCommitted  = "reservation.committed"
	TypeConflicted = "reservation.conflicted"
	TypeLockDenied = "reservation.lock_denied"
	TypeFailed     = "reservation.failed"

	SchemaVersion = "1"
)

// OutcomeEvent is the payload of every reservation event.
type OutcomeEvent struct {
	Status          string                `json:"status"`
	ResourceID      string                `json:"resource_id"`
	Block           string                `json:"block"`
	DayOfWeek       model.Weekday         `json:"day_of_week"`
	StartTime       string                `json:"start_time"`
	EndTime         string                `json:"end_time"`
	RequesterRole   model.Role            `json:"requester_role"`
	ReservationType model.ReservationType `json:"reservation_type"`
	Priority        float64               `json:"priority"`
	SubmittedAt     time.Time             `json:"submitted_at"`
	ReservationID   string                `json:"reservation_id,omitempty"`
	ConflictsWith   string                `json:"conflicts_with,omitempty"`
	Error           string                `json:"error,omitempty"`
}

type Publisher interface {
	PublishOutcome(ctx context.Context, req *model.ReservationRequest, outcome scheduler.Outcome) error
	Close() error
}

func EventType(status scheduler.OutcomeStatus) string {
	switch status {
	case scheduler.StatusCommitted:
		return TypeCommitted
	case scheduler.StatusConflicted:
		return TypeConflicted
	case scheduler.StatusLockDenied:
		return TypeLockDenied
	default:
		return TypeFailed
	}
}

func NewOutcomeEvent(req *model.ReservationRequest, outcome scheduler.Outcome) OutcomeEvent {
	ev := OutcomeEvent{
		Status:          outcome.Status.String(),
		ResourceID:      req.ResourceID,
		Block:           req.Block,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		RequesterRole:   req.RequesterRole,
		ReservationType: req.ReservationType,
		Priority:        req.Priority,
		SubmittedAt:     req.SubmittedAt,
	}
	if outcome.Reservation != nil {
		ev.ReservationID = outcome.Reservation.ID
	}
	if outcome.ConflictsWith != nil {
		ev.ConflictsWith = outcome.ConflictsWith.ID
	}
	if outcome.Err != nil {
		ev.Error = outcome.Err.Error()
	}
	return ev
}

// messagePublisher is the part of *kafka.Producer the publisher needs.
type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer messagePublisher
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer messagePublisher, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		log:      log.Component("reservation-events"),
	}
}

// PublishOutcome keys the event by classroom so a room's events stay ordered.
func (p *KafkaPublisher) PublishOutcome(ctx context.Context, req *model.ReservationRequest, outcome scheduler.Outcome) error {
	msg, err := kafka.NewMessage().
		WithKey(req.ResourceID).
		WithValue(NewOutcomeEvent(req, outcome)).
		WithEventType(EventType(outcome.Status)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return err
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation event",
			"resource_id", req.ResourceID,
			"event_type", msg.GetEventType(),
			"error", err,
		)
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOutcome(context.Context, *model.ReservationRequest, scheduler.Outcome) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
