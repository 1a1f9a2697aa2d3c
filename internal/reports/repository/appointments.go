package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notarynow/pkg/config"
	"notarynow/pkg/model"
)

// ReportReader is the read side of the report aggregation. It runs without
// coordination against concurrent bookings; slightly stale numbers are
// acceptable.
type ReportReader interface {
	FindForReport(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error)
	CompletedRevenue(ctx context.Context, providerID string, from, to time.Time) (float64, error)
	ServiceNames(ctx context.Context, serviceIDs []string) (map[string]string, error)
}

type mongoReportReader struct {
	cfg          *config.Config
	appointments *mongo.Collection
	services     *mongo.Collection
}

func NewMongoReportReader(cfg *config.Config) ReportReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReportReader{
		cfg:          cfg,
		appointments: db.Collection("Appointments"),
		services:     db.Collection("Services"),
	}
}

func (r *mongoReportReader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.cfg.ReadTimeout)
}

// FindForReport returns the provider's PENDING, CONFIRMED and COMPLETED
// appointments scheduled in [from, to], oldest first.
func (r *mongoReportReader) FindForReport(ctx context.Context, providerID string, from, to time.Time) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"scheduled_time": bson.M{
			"$gte": from,
			"$lte": to,
		},
		"status": bson.M{
			"$in": []config.AppointmentStatus{config.Pending, config.Confirmed, config.Completed},
		},
	}

	cursor, err := r.appointments.Find(ctx, filter,
		options.Find().SetSort(bson.M{"scheduled_time": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := []*model.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode report appointments: %w", err)
	}

	return appointments, nil
}

// CompletedRevenue sums total_cost over COMPLETED appointments scheduled in
// [from, to).
func (r *mongoReportReader) CompletedRevenue(ctx context.Context, providerID string, from, to time.Time) (float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"provider_id": providerID,
			"status":      config.Completed,
			"scheduled_time": bson.M{
				"$gte": from,
				"$lt":  to,
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total_cost"},
		}}},
	}

	cursor, err := r.appointments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Revenue, nil
}

// ServiceNames resolves catalog names for the given service IDs. Unknown
// IDs are simply absent from the result.
func (r *mongoReportReader) ServiceNames(ctx context.Context, serviceIDs []string) (map[string]string, error) {
	names := map[string]string{}
	if len(serviceIDs) == 0 {
		return names, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cursor, err := r.services.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service names: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}

	for _, svc := range services {
		names[svc.ID] = svc.Name
	}
	return names, nil
}
