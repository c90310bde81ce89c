package model

import "time"

// Classroom is a bookable room. LockedUntil is the soft lock that serializes
// the conflict-check and commit of a single reservation request.
type Classroom struct {
	ID          string     `json:"room_number" bson:"_id" yaml:"room_number" validate:"required,min=1,max=32"`
	Block       string     `json:"block" bson:"block" yaml:"block" validate:"required,min=1,max=32"`
	Floor       int        `json:"floor" bson:"floor" yaml:"floor" validate:"min=0,max=200"`
	Capacity    int        `json:"capacity" bson:"capacity" yaml:"capacity" validate:"required,min=1,max=1000"`
	Available   bool       `json:"available" bson:"available" yaml:"-"`
	LockedUntil *time.Time `json:"locked_until,omitempty" bson:"locked_until" yaml:"-"`
}

// Lockable reports whether the room may be soft-locked at now.
func (c *Classroom) Lockable(now time.Time) bool {
	if !c.Available {
		return false
	}
	return c.LockedUntil == nil || !c.LockedUntil.After(now)
}
