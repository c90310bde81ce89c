package scheduler

import (
	"context"

	"classbook/pkg/model"
)

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Times are
// zero-padded HH:MM strings, so string order is chronological order.
// Intervals that only touch do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && e1 > s2
}

type ConflictDetector struct {
	store OverlapQuerier
}

func NewConflictDetector(store OverlapQuerier) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// FindConflict returns the first committed reservation overlapping the
// interval, or nil when the slot is free.
func (d *ConflictDetector) FindConflict(ctx context.Context, resourceID string, day model.Weekday, start, end string) (*model.Reservation, error) {
	candidates, err := d.store.QueryOverlaps(ctx, resourceID, day, start, end)
	if err != nil {
		return nil, err
	}

	for _, r := range candidates {
		if r.ResourceID != resourceID || r.DayOfWeek != day {
			continue
		}
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			return r, nil
		}
	}
	return nil, nil
}

func (d *ConflictDetector) HasConflict(ctx context.Context, resourceID string, day model.Weekday, start, end string) (bool, error) {
	conflict, err := d.FindConflict(ctx, resourceID, day, start, end)
	if err != nil {
		return false, err
	}
	return conflict != nil, nil
}
