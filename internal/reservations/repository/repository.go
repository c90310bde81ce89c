package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ReservationsCollection = "Reservations"
	ClassroomsCollection   = "Classrooms"
)

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext is returned unchanged because wrapping it breaks the
// transaction binding.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	// Use the shorter of remaining time or requested timeout
	if remaining := time.Until(deadline); remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}
	return context.WithTimeout(ctx, timeout)
}
