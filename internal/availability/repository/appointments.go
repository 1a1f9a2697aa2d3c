package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notarynow/pkg/config"
	"notarynow/pkg/model"
)

const appointmentsCollection = "Appointments"

// AppointmentReader is the read-only view the slot resolver needs: which
// intervals of a provider's calendar are already consumed.
type AppointmentReader interface {
	FindBlocking(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error)
}

type mongoAppointmentReader struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAppointmentReader(cfg *config.Config) AppointmentReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentReader{
		cfg:        cfg,
		collection: db.Collection(appointmentsCollection),
	}
}

// FindBlocking returns non-cancelled appointments of the provider that could
// overlap [from, to). The filter widens the window by the maximum appointment
// duration so an appointment starting before `from` but running into the
// range is still caught.
func (r *mongoAppointmentReader) FindBlocking(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	earliestStart := from.Add(-time.Duration(r.cfg.MaxAppointmentMinutes) * time.Minute)

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$ne": config.Cancelled},
		"scheduled_time": bson.M{
			"$gte": earliestStart,
			"$lt":  to,
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}})

	cursor, err := r.collection.Find(queryCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking appointments: %w", err)
	}
	defer cursor.Close(queryCtx)

	var appointments []*model.Appointment
	if err = cursor.All(queryCtx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode blocking appointments: %w", err)
	}

	blocking := appointments[:0]
	for _, a := range appointments {
		if a.EndTime().After(from) {
			blocking = append(blocking, a)
		}
	}
	return blocking, nil
}
