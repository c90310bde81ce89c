package model

import "time"

type Reservation struct {
	ID              string          `json:"id,omitempty" bson:"_id,omitempty"`
	ResourceID      string          `json:"resource_id" bson:"resource_id"`
	Block           string          `json:"block" bson:"block"`
	DayOfWeek       Weekday         `json:"day_of_week" bson:"day_of_week"`
	StartTime       string          `json:"start_time" bson:"start_time"`
	EndTime         string          `json:"end_time" bson:"end_time"`
	Purpose         string          `json:"purpose" bson:"purpose"`
	RequesterRole   Role            `json:"requester_role" bson:"requester_role"`
	ReservationType ReservationType `json:"reservation_type" bson:"reservation_type"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
}

// ReservationRequest is an uncommitted candidate reservation waiting in a
// classroom queue. Priority and SubmittedAt are set by the scheduler side,
// never decoded from clients.
type ReservationRequest struct {
	ResourceID      string          `json:"resource_id" validate:"required,min=1,max=32"`
	Block           string          `json:"block" validate:"required,min=1,max=32"`
	DayOfWeek       Weekday         `json:"day_of_week" validate:"required,weekday"`
	StartTime       string          `json:"start_time" validate:"required,clock_time"`
	EndTime         string          `json:"end_time" validate:"required,clock_time"`
	Purpose         string          `json:"purpose" validate:"required,min=2,max=200"`
	RequesterRole   Role            `json:"requester_role" validate:"required,oneof=Senior Junior Student"`
	ReservationType ReservationType `json:"reservation_type" validate:"required,oneof=Exam ExtraClass Event"`

	Priority    float64   `json:"-"`
	SubmittedAt time.Time `json:"-"`
}

// ToReservation builds the record persisted on a successful commit.
func (r *ReservationRequest) ToReservation(createdAt time.Time) *Reservation {
	return &Reservation{
		ResourceID:      r.ResourceID,
		Block:           r.Block,
		DayOfWeek:       r.DayOfWeek,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Purpose:         r.Purpose,
		RequesterRole:   r.RequesterRole,
		ReservationType: r.ReservationType,
		CreatedAt:       createdAt,
	}
}
