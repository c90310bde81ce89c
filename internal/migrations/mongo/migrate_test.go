package mongo

import (
	"regexp"
	"testing"

	"classbook/internal/migrations/mongo/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	require.Len(t, defs, 2)

	assert.Equal(t, "Classrooms", defs[0].Name)
	assert.Equal(t, "Reservations", defs[1].Name)
	for _, def := range defs {
		assert.NotEmpty(t, def.Indexes, def.Name)
		assert.Contains(t, def.Validator, "$jsonSchema", def.Name)
	}
}

func TestReservationsIndexes_CoverOverlapQuery(t *testing.T) {
	keys, ok := ReservationsIndexes[0].Keys.(bson.D)
	require.True(t, ok)

	var names []string
	for _, k := range keys {
		names = append(names, k.Key)
	}
	assert.Equal(t, []string{"resource_id", "day_of_week", "start_time", "end_time"}, names)
}

func TestClockTimePattern(t *testing.T) {
	re := regexp.MustCompile(validators.ClockTimePattern)

	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, re.MatchString(ok), ok)
	}
	for _, bad := range []string{"9:30", "24:00", "12:60", "12:00:00", ""} {
		assert.False(t, re.MatchString(bad), bad)
	}
}
