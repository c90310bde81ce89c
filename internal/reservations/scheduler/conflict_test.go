package scheduler

import (
	"context"
	"errors"
	"testing"

	"classbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap at end", "09:00", "10:00", "09:30", "10:30", true},
		{"partial overlap at start", "09:30", "10:30", "09:00", "10:00", true},
		{"contained", "09:15", "09:45", "09:00", "10:00", true},
		{"containing", "08:00", "11:00", "09:00", "10:00", true},
		{"touching after", "10:00", "11:00", "09:00", "10:00", false},
		{"touching before", "08:00", "09:00", "09:00", "10:00", false},
		{"disjoint", "13:00", "14:00", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}

func TestConflictDetector_HasConflict(t *testing.T) {
	store := newFakeStore("101")
	store.reservations = []*model.Reservation{
		{ID: "r1", ResourceID: "101", DayOfWeek: model.Monday, StartTime: "09:00", EndTime: "10:00"},
		{ID: "r2", ResourceID: "102", DayOfWeek: model.Monday, StartTime: "11:00", EndTime: "12:00"},
		{ID: "r3", ResourceID: "101", DayOfWeek: model.Tuesday, StartTime: "11:00", EndTime: "12:00"},
	}
	d := NewConflictDetector(store)
	ctx := context.Background()

	tests := []struct {
		name       string
		day        model.Weekday
		start, end string
		want       bool
	}{
		{"overlaps committed", model.Monday, "09:30", "10:30", true},
		{"touches committed end", model.Monday, "10:00", "11:00", false},
		{"other room's slot", model.Monday, "11:00", "12:00", false},
		{"same slot other day", model.Tuesday, "09:00", "10:00", false},
		{"other day overlap", model.Tuesday, "11:30", "12:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.HasConflict(ctx, "101", tt.day, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflictDetector_FindConflictReturnsBlockingReservation(t *testing.T) {
	store := newFakeStore("101")
	store.reservations = []*model.Reservation{
		{ID: "r1", ResourceID: "101", DayOfWeek: model.Monday, StartTime: "09:00", EndTime: "10:00"},
	}

	got, err := NewConflictDetector(store).FindConflict(context.Background(), "101", model.Monday, "08:30", "09:30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
}

func TestConflictDetector_StoreError(t *testing.T) {
	store := newFakeStore("101")
	store.queryErr = errors.New("connection reset by peer")

	_, err := NewConflictDetector(store).HasConflict(context.Background(), "101", model.Monday, "09:00", "10:00")
	assert.ErrorIs(t, err, store.queryErr)
}
