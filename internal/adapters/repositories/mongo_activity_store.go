package repositories

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB implementation of the ActivityStore port.
//
// A trip is one document with its activities embedded, so SaveOrder is a
// single-document update and therefore atomic without a transaction.
type MongoActivityStore struct {
	Collection *mongo.Collection
}

func NewMongoActivityStore(coll *mongo.Collection) *MongoActivityStore {
	return &MongoActivityStore{Collection: coll}
}

type tripDoc struct {
	ID         string        `bson:"_id"`
	Name       string        `bson:"name"`
	StartDate  time.Time     `bson:"start_date"`
	EndDate    time.Time     `bson:"end_date"`
	Activities []activityDoc `bson:"activities"`
}

type activityDoc struct {
	ID              string    `bson:"id"`
	Day             int       `bson:"day"`
	Date            time.Time `bson:"date"`
	TimeOfDay       string    `bson:"time_of_day,omitempty"`
	DurationMinutes *int      `bson:"duration_minutes,omitempty"`
	Lat             *float64  `bson:"lat,omitempty"`
	Lon             *float64  `bson:"lon,omitempty"`
	Address         string    `bson:"address,omitempty"`
	Order           int       `bson:"order"`
	Title           string    `bson:"title"`
	Category        string    `bson:"category,omitempty"`
}

func (s *MongoActivityStore) GetTrip(ctx context.Context, tripID string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "store.mongo.GetTrip")(&err)

	if s.Collection == nil {
		return nil, errors.New("mongo activity store: collection is nil")
	}

	var doc tripDoc
	err = s.Collection.FindOne(ctx, bson.M{"_id": tripID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("get trip %q: %w", tripID, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: find: %w", tripID, err)
	}

	return doc.toDomain(), nil
}

// SaveOrder sets every activity's order with one UpdateOne. The filter
// requires all activity ids to be present, so an unknown id updates nothing.
func (s *MongoActivityStore) SaveOrder(ctx context.Context, tripID string, activities []*domain.Activity) (err error) {
	defer obs.Time(ctx, "store.mongo.SaveOrder")(&err)

	if s.Collection == nil {
		return errors.New("mongo activity store: collection is nil")
	}

	if len(activities) == 0 {
		return nil
	}

	ids := make([]string, 0, len(activities))
	set := bson.M{}
	filters := make([]interface{}, 0, len(activities))
	for i, a := range activities {
		ident := fmt.Sprintf("a%d", i)
		ids = append(ids, a.ID)
		set[fmt.Sprintf("activities.$[%s].order", ident)] = a.Order
		filters = append(filters, bson.M{ident + ".id": a.ID})
	}

	filter := bson.M{"_id": tripID, "activities.id": bson.M{"$all": ids}}
	update := bson.M{"$set": set}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{Filters: filters})

	res, err := s.Collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("save order trip %q: update: %w", tripID, err)
	}

	if res.MatchedCount == 0 {
		n, err := s.Collection.CountDocuments(ctx, bson.M{"_id": tripID})
		if err != nil {
			return fmt.Errorf("save order trip %q: count: %w", tripID, err)
		}
		if n == 0 {
			return fmt.Errorf("save order trip %q: %w", tripID, domain.ErrTripNotFound)
		}
		return fmt.Errorf("save order trip %q: %w", tripID, domain.ErrUnknownActivity)
	}

	return nil
}

// InsertTrip stores or replaces the trip document.
func (s *MongoActivityStore) InsertTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "store.mongo.InsertTrip")(&err)

	if s.Collection == nil {
		return errors.New("mongo activity store: collection is nil")
	}

	if trip == nil || trip.ID == "" {
		return errors.New("insert trip: trip id must be non-empty")
	}

	doc := tripToDoc(trip)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": trip.ID}, doc, opts); err != nil {
		return fmt.Errorf("insert trip %q: replace: %w", trip.ID, err)
	}

	return nil
}

func (d tripDoc) toDomain() *domain.Trip {
	trip := &domain.Trip{
		ID:         d.ID,
		Name:       d.Name,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		Activities: make([]*domain.Activity, 0, len(d.Activities)),
	}

	for _, a := range d.Activities {
		act := &domain.Activity{
			ID:                       a.ID,
			TripID:                   d.ID,
			Day:                      a.Day,
			Date:                     a.Date,
			TimeOfDay:                a.TimeOfDay,
			EstimatedDurationMinutes: a.DurationMinutes,
			Address:                  a.Address,
			Order:                    a.Order,
			Title:                    a.Title,
			Category:                 a.Category,
		}
		if a.Lat != nil && a.Lon != nil {
			act.Location = &domain.Coordinates{Lat: *a.Lat, Lon: *a.Lon}
		}
		trip.Activities = append(trip.Activities, act)
	}

	return trip
}

func tripToDoc(t *domain.Trip) tripDoc {
	doc := tripDoc{
		ID:         t.ID,
		Name:       t.Name,
		StartDate:  t.StartDate,
		EndDate:    t.EndDate,
		Activities: make([]activityDoc, 0, len(t.Activities)),
	}

	for _, a := range t.Activities {
		ad := activityDoc{
			ID:              a.ID,
			Day:             a.Day,
			Date:            a.Date,
			TimeOfDay:       a.TimeOfDay,
			DurationMinutes: a.EstimatedDurationMinutes,
			Address:         a.Address,
			Order:           a.Order,
			Title:           a.Title,
			Category:        a.Category,
		}
		if a.Location != nil {
			lat, lon := a.Location.Lat, a.Location.Lon
			ad.Lat, ad.Lon = &lat, &lon
		}
		doc.Activities = append(doc.Activities, ad)
	}

	return doc
}
