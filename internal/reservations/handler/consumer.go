package handler

import (
	"context"

	"classbook/internal/reservations/service"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/kafka"
	"classbook/pkg/logger"
	"classbook/pkg/model"
)

// RequestConsumer submits reservation requests read from Kafka. Malformed
// or invalid requests are permanent failures, rejected ones are business
// failures and store outages are retried.
type RequestConsumer struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewRequestConsumer(service service.ReservationService, log *logger.Logger) *RequestConsumer {
	return &RequestConsumer{
		service: service,
		log:     log,
	}
}

func (c *RequestConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var req model.ReservationRequest
	if err := msg.DecodeValue(&req); err != nil {
		return err
	}

	reservation, err := c.service.Submit(ctx, &req)
	if err == nil {
		c.log.Info("Reservation committed from queue",
			"id", reservation.ID,
			"resource_id", reservation.ResourceID,
			"event_id", msg.GetEventID(),
		)
		return nil
	}

	appErr := apperrors.AsAppError(err)
	switch appErr.Code {
	case apperrors.CodeValidation, apperrors.CodeInvalidInput:
		return kafka.NewPermanentError("invalid reservation request", err)
	case apperrors.CodeConflict, apperrors.CodeLocked:
		return kafka.NewBusinessError("reservation rejected", err)
	default:
		return kafka.NewTransientError("reservation store unavailable", err)
	}
}
