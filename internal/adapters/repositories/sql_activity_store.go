package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the ActivityStore port.
// Queries are written with '?' placeholders and rebound for the driver,
// so the same store serves SQLite and Postgres.
type SQLActivityStore struct {
	DB *sqlx.DB
}

func NewSQLActivityStore(db *sqlx.DB) *SQLActivityStore {
	return &SQLActivityStore{DB: db}
}

type tripRow struct {
	TripID    string `db:"trip_id"`
	Name      string `db:"name"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
}

type activityRow struct {
	ActivityID      string          `db:"activity_id"`
	TripID          string          `db:"trip_id"`
	Day             int             `db:"day"`
	ActivityDate    string          `db:"activity_date"`
	TimeOfDay       string          `db:"time_of_day"`
	DurationMinutes sql.NullInt64   `db:"duration_minutes"`
	Lat             sql.NullFloat64 `db:"lat"`
	Lon             sql.NullFloat64 `db:"lon"`
	Address         string          `db:"address"`
	SortOrder       int             `db:"sort_order"`
	Title           string          `db:"title"`
	Category        string          `db:"category"`
}

// Return the trip with all of its activities.
func (s *SQLActivityStore) GetTrip(ctx context.Context, tripID string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "store.sql.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sql activity store: DB is nil")
	}

	var tr tripRow
	err = s.DB.GetContext(ctx, &tr, s.DB.Rebind(`
	SELECT
		trip_id,
		name,
		start_date,
		end_date
	FROM trips
	WHERE trip_id = ?;
	`), tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %q: %w", tripID, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: query trips table: %w", tripID, err)
	}

	trip, err := tr.toDomain()
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	var rows []activityRow
	err = s.DB.SelectContext(ctx, &rows, s.DB.Rebind(`
	SELECT
		activity_id,
		trip_id,
		day,
		activity_date,
		time_of_day,
		duration_minutes,
		lat,
		lon,
		address,
		sort_order,
		title,
		category
	FROM activities
	WHERE trip_id = ?
	ORDER BY sort_order, activity_id;
	`), tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %q: query activities table: %w", tripID, err)
	}

	trip.Activities = make([]*domain.Activity, 0, len(rows))
	for _, r := range rows {
		trip.Activities = append(trip.Activities, r.toDomain())
	}

	return trip, nil
}

// Persist new order values in a single transaction. An activity that does
// not belong to the trip aborts the whole update.
func (s *SQLActivityStore) SaveOrder(ctx context.Context, tripID string, activities []*domain.Activity) (err error) {
	defer obs.Time(ctx, "store.sql.SaveOrder")(&err)

	if s.DB == nil {
		return errors.New("sql activity store: DB is nil")
	}

	if len(activities) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save order: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
	UPDATE activities
	SET sort_order = ?
	WHERE trip_id = ?
		AND activity_id = ?;
	`))
	if err != nil {
		return fmt.Errorf("save order: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range activities {
		res, err := stmt.ExecContext(ctx, a.Order, tripID, a.ID)
		if err != nil {
			return fmt.Errorf("save order activity_id=%q: %w", a.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("save order activity_id=%q: rows affected: %w", a.ID, err)
		}
		if n != 1 {
			return fmt.Errorf("save order activity_id=%q: %w", a.ID, domain.ErrUnknownActivity)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save order commit: %w", err)
	}

	return nil
}

// InsertTrip stores or replaces a trip and its activities.
func (s *SQLActivityStore) InsertTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "store.sql.InsertTrip")(&err)

	if s.DB == nil {
		return errors.New("sql activity store: DB is nil")
	}

	if trip == nil || trip.ID == "" {
		return errors.New("insert trip: trip id must be non-empty")
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert trip: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
	INSERT INTO trips (trip_id, name, start_date, end_date)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (trip_id) DO UPDATE
	SET name = EXCLUDED.name,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date;
	`), trip.ID, trip.Name, formatTime(trip.StartDate), formatTime(trip.EndDate))
	if err != nil {
		return fmt.Errorf("insert trip %q: %w", trip.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
	INSERT INTO activities (
		activity_id,
		trip_id,
		day,
		activity_date,
		time_of_day,
		duration_minutes,
		lat,
		lon,
		address,
		sort_order,
		title,
		category
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (activity_id) DO UPDATE
	SET trip_id = EXCLUDED.trip_id,
		day = EXCLUDED.day,
		activity_date = EXCLUDED.activity_date,
		time_of_day = EXCLUDED.time_of_day,
		duration_minutes = EXCLUDED.duration_minutes,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		address = EXCLUDED.address,
		sort_order = EXCLUDED.sort_order,
		title = EXCLUDED.title,
		category = EXCLUDED.category;
	`))
	if err != nil {
		return fmt.Errorf("insert trip: prepare activity insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range trip.Activities {
		r := activityToRow(trip.ID, a)
		if _, err := stmt.ExecContext(ctx,
			r.ActivityID, r.TripID, r.Day, r.ActivityDate, r.TimeOfDay, r.DurationMinutes,
			r.Lat, r.Lon, r.Address, r.SortOrder, r.Title, r.Category,
		); err != nil {
			return fmt.Errorf("insert trip: activity_id=%q: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert trip: commit tx: %w", err)
	}

	return nil
}

func (r tripRow) toDomain() (*domain.Trip, error) {
	start, err := parseTime(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := parseTime(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse end_date: %w", err)
	}

	return &domain.Trip{
		ID:        r.TripID,
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func (r activityRow) toDomain() *domain.Activity {
	a := &domain.Activity{
		ID:        r.ActivityID,
		TripID:    r.TripID,
		Day:       r.Day,
		TimeOfDay: r.TimeOfDay,
		Address:   r.Address,
		Order:     r.SortOrder,
		Title:     r.Title,
		Category:  r.Category,
	}

	// A malformed stored date leaves Date zero, which buckets to day 1.
	if d, err := parseTime(r.ActivityDate); err == nil {
		a.Date = d
	}

	if r.DurationMinutes.Valid {
		m := int(r.DurationMinutes.Int64)
		a.EstimatedDurationMinutes = &m
	}

	if r.Lat.Valid && r.Lon.Valid {
		a.Location = &domain.Coordinates{Lat: r.Lat.Float64, Lon: r.Lon.Float64}
	}

	return a
}

func activityToRow(tripID string, a *domain.Activity) activityRow {
	r := activityRow{
		ActivityID:   a.ID,
		TripID:       tripID,
		Day:          a.Day,
		ActivityDate: formatTime(a.Date),
		TimeOfDay:    a.TimeOfDay,
		Address:      a.Address,
		SortOrder:    a.Order,
		Title:        a.Title,
		Category:     a.Category,
	}

	if a.EstimatedDurationMinutes != nil {
		r.DurationMinutes = sql.NullInt64{Int64: int64(*a.EstimatedDurationMinutes), Valid: true}
	}

	if a.Location != nil {
		r.Lat = sql.NullFloat64{Float64: a.Location.Lat, Valid: true}
		r.Lon = sql.NullFloat64{Float64: a.Location.Lon, Valid: true}
	}

	return r
}

// Timestamps are stored as RFC 3339 text so the zone offset survives in
// both dialects.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if d, derr := time.Parse(time.DateOnly, s); derr == nil {
		return d, nil
	}
	return time.Time{}, err
}
