package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryActivityStore()

	n, err := SeedFromJSON(ctx, store, filepath.Join("testdata", "trips.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trip, err := store.GetTrip(ctx, "kyoto")
	require.NoError(t, err)
	assert.Equal(t, 3, trip.DayCount())
	require.Len(t, trip.Activities, 4)

	fushimi := trip.Activities[0]
	assert.Equal(t, "fushimi", fushimi.ID)
	assert.Equal(t, 1, fushimi.Day)
	assert.Equal(t, 0, fushimi.Order)
	require.NotNil(t, fushimi.Location)

	kinkaku := trip.Activities[1]
	assert.NotEmpty(t, kinkaku.ID, "missing ids are generated")
	assert.Equal(t, 1, kinkaku.Order)

	bamboo := trip.Activities[2]
	assert.Equal(t, 2, bamboo.Day)
	assert.Equal(t, 0, bamboo.Order, "order counts per day")
	assert.Nil(t, bamboo.Location)

	dinner := trip.Activities[3]
	assert.Equal(t, 2, dinner.Order)
	assert.Empty(t, dinner.TimeOfDay)
}

func TestSeedFromJSONRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing trip id", `[{"start_date": "2026-01-01", "end_date": "2026-01-02"}]`},
		{"bad start date", `[{"trip_id": "x", "start_date": "soon", "end_date": "2026-01-02"}]`},
		{"lat without lon", `[{"trip_id": "x", "start_date": "2026-01-01", "end_date": "2026-01-02",
			"activities": [{"title": "a", "lat": 1.0}]}]`},
		{"negative duration", `[{"trip_id": "x", "start_date": "2026-01-01", "end_date": "2026-01-02",
			"activities": [{"title": "a", "duration_minutes": -5}]}]`},
		{"missing title", `[{"trip_id": "x", "start_date": "2026-01-01", "end_date": "2026-01-02",
			"activities": [{"time_of_day": "09:00"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := SeedFromJSON(context.Background(), NewMemoryActivityStore(), path)
			require.Error(t, err)
		})
	}
}
