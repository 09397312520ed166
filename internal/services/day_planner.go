package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"log"
	"time"
)

// PlannerSettings holds the tunable constants of day planning.
type PlannerSettings struct {
	// Duration assumed for activities without an estimate.
	DefaultDuration time.Duration
	// Gap below which consecutive activities get a too-close warning. 0 disables.
	MinGap time.Duration
	// Days with more activities than this are not optimized. 0 means no limit.
	MaxOptimizeActivities int
}

func DefaultPlannerSettings() PlannerSettings {
	return PlannerSettings{
		DefaultDuration:       DefaultActivityDuration,
		MinGap:                15 * time.Minute,
		MaxOptimizeActivities: 200,
	}
}

// DayView is one day of a trip as shown to the user.
type DayView struct {
	TripID     string
	Day        int
	Date       time.Time
	Activities []*domain.Activity
	Conflicts  []domain.Conflict
	TightGaps  []domain.Conflict
}

// DaySummary is a compact per-day overview of a trip.
type DaySummary struct {
	Day           int
	Date          time.Time
	ActivityCount int
	ConflictCount int
}

// OptimizeResult is the outcome of a route optimization request.
// Applicable is false when the day was left untouched; Reason says why.
type OptimizeResult struct {
	DayView
	Applicable bool
	Reason     string
}

const (
	ReasonTooFewLocations   = "fewer than two activities have a known location"
	ReasonTooManyActivities = "day has too many activities to optimize"
)

// DayPlanner ties bucketing, conflict detection, route optimization and order
// assignment to an ActivityStore. It keeps no state besides its collaborators.
//
// Mutating operations hold the (trip, day) lock from reading the day until
// the new order is persisted.
type DayPlanner struct {
	Store    ports.ActivityStore
	Locker   ports.DayLocker
	Geocoder ports.Geocoder
	Settings PlannerSettings
}

func NewDayPlanner(
	store ports.ActivityStore,
	locker ports.DayLocker,
	geocoder ports.Geocoder,
	settings PlannerSettings,
) *DayPlanner {
	return &DayPlanner{
		Store:    store,
		Locker:   locker,
		Geocoder: geocoder,
		Settings: settings,
	}
}

// Day returns the activities of one day with their conflicts and gap warnings.
func (p *DayPlanner) Day(ctx context.Context, tripID string, day int) (_ *DayView, err error) {
	defer obs.Time(ctx, "planner.Day")(&err)

	trip, activities, err := p.loadDay(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("day view: %w", err)
	}

	return p.view(trip, day, activities), nil
}

// Days summarizes every day of the trip.
func (p *DayPlanner) Days(ctx context.Context, tripID string) (_ []DaySummary, err error) {
	defer obs.Time(ctx, "planner.Days")(&err)

	trip, err := p.getTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}

	buckets := BucketByDay(trip.StartDate, trip.Activities)

	count := trip.DayCount()
	out := make([]DaySummary, 0, count)
	for d := 1; d <= count; d++ {
		activities := buckets[d]
		out = append(out, DaySummary{
			Day:           d,
			Date:          trip.DateForDay(d),
			ActivityCount: len(activities),
			ConflictCount: len(DetectConflicts(activities, p.Settings.DefaultDuration)),
		})
	}

	return out, nil
}

// OptimizeDay reorders one day by nearest-neighbor distance and persists the
// new order. Days that cannot be optimized are returned unchanged with
// Applicable set to false.
//
// If persisting fails the error wraps *PersistOrderError.
func (p *DayPlanner) OptimizeDay(ctx context.Context, tripID string, day int) (_ *OptimizeResult, err error) {
	defer obs.Time(ctx, "planner.OptimizeDay")(&err)

	unlock, err := p.lock(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("optimize day: %w", err)
	}
	defer unlock()

	trip, activities, err := p.loadDay(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("optimize day: %w", err)
	}

	if limit := p.Settings.MaxOptimizeActivities; limit > 0 && len(activities) > limit {
		return &OptimizeResult{
			DayView: *p.view(trip, day, activities),
			Reason:  ReasonTooManyActivities,
		}, nil
	}

	// Geocoding is best effort: unresolved activities simply have no location.
	if n, err := ResolveLocations(ctx, p.Geocoder, activities); err != nil {
		log.Printf("req_id=%s trip_id=%s day=%d resolve locations failed: %v", obs.RequestID(ctx), tripID, day, err)
	} else if n > 0 {
		log.Printf("req_id=%s trip_id=%s day=%d resolved_locations=%d", obs.RequestID(ctx), tripID, day, n)
	}

	route, ok := OptimizeRoute(activities)
	if !ok {
		return &OptimizeResult{
			DayView: *p.view(trip, day, activities),
			Reason:  ReasonTooFewLocations,
		}, nil
	}

	if err := ApplyOrder(ctx, p.Store, tripID, route); err != nil {
		return nil, fmt.Errorf("optimize day: trip %q day %d: %w", tripID, day, err)
	}

	return &OptimizeResult{
		DayView:    *p.view(trip, day, route),
		Applicable: true,
	}, nil
}

// ReorderDay applies a manual ordering. ids must list every activity of the
// day exactly once.
func (p *DayPlanner) ReorderDay(ctx context.Context, tripID string, day int, ids []string) (_ *DayView, err error) {
	defer obs.Time(ctx, "planner.ReorderDay")(&err)

	unlock, err := p.lock(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("reorder day: %w", err)
	}
	defer unlock()

	trip, activities, err := p.loadDay(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("reorder day: %w", err)
	}

	seq, err := sequenceByID(activities, ids)
	if err != nil {
		return nil, fmt.Errorf("reorder day: trip %q day %d: %w", tripID, day, err)
	}

	if err := ApplyOrder(ctx, p.Store, tripID, seq); err != nil {
		return nil, fmt.Errorf("reorder day: trip %q day %d: %w", tripID, day, err)
	}

	return p.view(trip, day, seq), nil
}

func (p *DayPlanner) lock(ctx context.Context, tripID string, day int) (func(), error) {
	if p.Locker == nil {
		return func() {}, nil
	}

	unlock, err := p.Locker.Lock(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("lock trip %q day %d: %w", tripID, day, err)
	}
	return unlock, nil
}

func (p *DayPlanner) getTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if p.Store == nil {
		return nil, errors.New("activity store is nil")
	}

	trip, err := p.Store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", tripID, err)
	}
	return trip, nil
}

func (p *DayPlanner) loadDay(ctx context.Context, tripID string, day int) (*domain.Trip, []*domain.Activity, error) {
	trip, err := p.getTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	if !trip.ContainsDay(day) {
		return nil, nil, fmt.Errorf("trip %q day %d of %d: %w", tripID, day, trip.DayCount(), domain.ErrDayOutOfRange)
	}

	return trip, DayActivities(trip, day), nil
}

func (p *DayPlanner) view(trip *domain.Trip, day int, activities []*domain.Activity) *DayView {
	return &DayView{
		TripID:     trip.ID,
		Day:        day,
		Date:       trip.DateForDay(day),
		Activities: activities,
		Conflicts:  DetectConflicts(activities, p.Settings.DefaultDuration),
		TightGaps:  DetectTightGaps(activities, p.Settings.MinGap, p.Settings.DefaultDuration),
	}
}

// sequenceByID maps ids onto activities, requiring an exact permutation.
func sequenceByID(activities []*domain.Activity, ids []string) ([]*domain.Activity, error) {
	byID := make(map[string]*domain.Activity, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
	}

	if len(ids) != len(activities) {
		return nil, fmt.Errorf("got %d ids for %d activities: %w", len(ids), len(activities), domain.ErrIncompleteOrder)
	}

	seq := make([]*domain.Activity, 0, len(ids))
	used := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("activity %q: %w", id, domain.ErrUnknownActivity)
		}
		if _, dup := used[id]; dup {
			return nil, fmt.Errorf("activity %q listed twice: %w", id, domain.ErrIncompleteOrder)
		}
		used[id] = struct{}{}
		seq = append(seq, a)
	}

	return seq, nil
}
