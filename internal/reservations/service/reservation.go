package service

import (
	"context"
	"errors"

	reservationserrors "classbook/internal/reservations/errors"
	"classbook/internal/reservations/events"
	"classbook/internal/reservations/repository"
	"classbook/internal/reservations/scheduler"
	"classbook/internal/reservations/validator"
	"classbook/pkg/clock"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"
	"classbook/pkg/sanitizer"
)

// Submitter admits a request through the per-classroom queue.
type Submitter interface {
	Submit(ctx context.Context, req *model.ReservationRequest) scheduler.Outcome
}

type ReservationService interface {
	Submit(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListByResourceAndDay(ctx context.Context, resourceID string, day string) ([]*model.Reservation, error)
	SearchAvailable(ctx context.Context, block string, day string, timeslot string) ([]*model.Classroom, error)
}

type reservationService struct {
	scheduler    Submitter
	reservations repository.ReservationRepository
	classrooms   repository.ClassroomRepository
	validator    *validator.ReservationValidator
	publisher    events.Publisher
	clock        clock.Clock
	log          *logger.Logger
}

func NewReservationService(
	sched Submitter,
	reservations repository.ReservationRepository,
	classrooms repository.ClassroomRepository,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	clk clock.Clock,
	log *logger.Logger,
) ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &reservationService{
		scheduler:    sched,
		reservations: reservations,
		classrooms:   classrooms,
		validator:    validator,
		publisher:    publisher,
		clock:        clk,
		log:          log.Component("reservation-service"),
	}
}

// Submit stamps the request with the server clock, runs it through the
// scheduler and translates the outcome into an AppError.
func (s *reservationService) Submit(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.log.Warn("Reservation validation failed",
			"resource_id", req.ResourceID,
			"day_of_week", req.DayOfWeek,
			"error", err,
		)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	req.SubmittedAt = s.clock.Now()
	req.Priority = scheduler.Priority(req.RequesterRole, req.ReservationType, req.SubmittedAt)

	outcome := s.scheduler.Submit(ctx, req)

	if err := s.publisher.PublishOutcome(context.WithoutCancel(ctx), req, outcome); err != nil {
		s.log.Warn("Reservation outcome event not published",
			"resource_id", req.ResourceID,
			"status", outcome.Status.String(),
			"error", err,
		)
	}

	return outcome.Reservation, outcomeError(req, outcome)
}

func outcomeError(req *model.ReservationRequest, outcome scheduler.Outcome) error {
	switch outcome.Status {
	case scheduler.StatusCommitted:
		return nil
	case scheduler.StatusConflicted:
		details := map[string]any{
			"resource_id": req.ResourceID,
			"day_of_week": req.DayOfWeek,
		}
		if c := outcome.ConflictsWith; c != nil {
			details["conflicts_with"] = c.ID
			details["existing_slot"] = c.StartTime + "-" + c.EndTime
		}
		appErr := apperrors.Conflict("Time slot overlaps an existing reservation").WithDetails(details)
		appErr.Err = reservationserrors.ErrConflict
		return appErr
	case scheduler.StatusLockDenied:
		appErr := apperrors.Locked("Classroom is unavailable or locked by another reservation, try again shortly")
		appErr.Err = reservationserrors.ErrLocked
		return appErr
	default:
		cause := outcome.Err
		if cause == nil {
			cause = reservationserrors.ErrStoreUnavailable
		}
		return apperrors.UnavailableWithCause("Reservation store", cause)
	}
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.log.Error("Failed to get reservation by ID", "id", id, "error", err)
		return nil, apperrors.UnavailableWithCause("Reservation store", err)
	}
	return res, nil
}

// ListByResourceAndDay returns a classroom's reservations for one day,
// earliest first.
func (s *reservationService) ListByResourceAndDay(ctx context.Context, resourceID string, day string) ([]*model.Reservation, error) {
	resourceID = sanitizer.NormalizeIdentifier(resourceID)
	weekday := model.Weekday(sanitizer.NormalizeWeekday(day))

	if resourceID == "" {
		return nil, apperrors.InvalidInput("resource_id is required")
	}
	if !weekday.Valid() {
		return nil, apperrors.InvalidInput("day_of_week must be a day name from Sunday to Saturday")
	}

	results, err := s.reservations.FindByResourceAndDay(ctx, resourceID, weekday)
	if err != nil {
		s.log.Error("Failed to list reservations",
			"resource_id", resourceID,
			"day_of_week", weekday,
			"error", err,
		)
		return nil, apperrors.UnavailableWithCause("Reservation store", err)
	}
	return results, nil
}

// SearchAvailable lists the available, unlocked classrooms of a block that
// have no reservation overlapping timeslot on day.
func (s *reservationService) SearchAvailable(ctx context.Context, block string, day string, timeslot string) ([]*model.Classroom, error) {
	block = sanitizer.NormalizeIdentifier(block)
	weekday := model.Weekday(sanitizer.NormalizeWeekday(day))

	if block == "" {
		return nil, apperrors.InvalidInput("block is required")
	}
	if !weekday.Valid() {
		return nil, apperrors.InvalidInput("day_of_week must be a day name from Sunday to Saturday")
	}
	start, end, err := validator.ParseTimeslot(timeslot)
	if err != nil {
		return nil, apperrors.Validation("Invalid timeslot", map[string]any{"error": err.Error()})
	}

	busy, err := s.reservations.BusyResourceIDs(ctx, block, weekday, start, end)
	if err != nil {
		s.log.Error("Failed to find busy classrooms", "block", block, "day_of_week", weekday, "error", err)
		return nil, apperrors.UnavailableWithCause("Reservation store", err)
	}

	rooms, err := s.classrooms.FindAvailable(ctx, block, busy, s.clock.Now())
	if err != nil {
		s.log.Error("Failed to find available classrooms", "block", block, "error", err)
		return nil, apperrors.UnavailableWithCause("Classroom store", err)
	}

	s.log.Debug("Classroom search completed",
		"block", block,
		"day_of_week", weekday,
		"timeslot", start+"-"+end,
		"busy", len(busy),
		"available", len(rooms),
	)
	return rooms, nil
}

func (s *reservationService) sanitize(req *model.ReservationRequest) {
	req.ResourceID = sanitizer.NormalizeIdentifier(req.ResourceID)
	req.Block = sanitizer.NormalizeIdentifier(req.Block)
	req.DayOfWeek = model.Weekday(sanitizer.NormalizeWeekday(string(req.DayOfWeek)))
	req.StartTime = sanitizer.NormalizeClockTime(req.StartTime)
	req.EndTime = sanitizer.NormalizeClockTime(req.EndTime)
	req.Purpose = sanitizer.NormalizePurpose(req.Purpose)
}
