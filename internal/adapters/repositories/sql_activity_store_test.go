package repositories

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/db"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteStore(t *testing.T) *SQLActivityStore {
	t.Helper()

	conn, err := db.OpenSqlite(filepath.Join(t.TempDir(), "itinerary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return NewSQLActivityStore(conn)
}

func TestSQLActivityStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSqliteStore(t)
	want := sampleTrip()

	require.NoError(t, store.InsertTrip(ctx, want))

	got, err := store.GetTrip(ctx, "rome")
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.StartDate.Equal(got.StartDate))
	assert.True(t, want.EndDate.Equal(got.EndDate))
	require.Len(t, got.Activities, 3)

	colosseum := got.Activities[0]
	assert.Equal(t, "colosseum", colosseum.ID)
	assert.Equal(t, "09:00", colosseum.TimeOfDay)
	require.NotNil(t, colosseum.EstimatedDurationMinutes)
	assert.Equal(t, 60, *colosseum.EstimatedDurationMinutes)
	require.NotNil(t, colosseum.Location)
	assert.InDelta(t, 41.8902, colosseum.Location.Lat, 1e-9)
	assert.True(t, want.StartDate.Equal(colosseum.Date))

	dinner := got.Activities[2]
	assert.Nil(t, dinner.Location)
	assert.Nil(t, dinner.EstimatedDurationMinutes)
	assert.Equal(t, "Via del Governo Vecchio", dinner.Address)
}

func TestSQLActivityStoreSaveOrder(t *testing.T) {
	ctx := context.Background()
	store := newSqliteStore(t)
	require.NoError(t, store.InsertTrip(ctx, sampleTrip()))

	err := store.SaveOrder(ctx, "rome", []*domain.Activity{
		{ID: "dinner", Order: 0},
		{ID: "forum", Order: 1},
		{ID: "colosseum", Order: 2},
	})
	require.NoError(t, err)

	got, err := store.GetTrip(ctx, "rome")
	require.NoError(t, err)

	order := make([]string, 0, len(got.Activities))
	for _, a := range got.Activities {
		order = append(order, a.ID)
	}
	assert.Equal(t, []string{"dinner", "forum", "colosseum"}, order)
}

func TestSQLActivityStoreSaveOrderRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newSqliteStore(t)
	require.NoError(t, store.InsertTrip(ctx, sampleTrip()))

	err := store.SaveOrder(ctx, "rome", []*domain.Activity{
		{ID: "dinner", Order: 0},
		{ID: "not-in-trip", Order: 1},
	})
	require.ErrorIs(t, err, domain.ErrUnknownActivity)

	got, err := store.GetTrip(ctx, "rome")
	require.NoError(t, err)
	assert.Equal(t, "colosseum", got.Activities[0].ID, "failed save must leave the stored order untouched")
	assert.Equal(t, 2, got.Activities[2].Order)
}

func TestSQLActivityStoreTripNotFound(t *testing.T) {
	store := newSqliteStore(t)

	_, err := store.GetTrip(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrTripNotFound)
}
