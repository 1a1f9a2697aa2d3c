package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appointmenterrors "notarynow/internal/appointments/errors"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	"notarynow/pkg/model"
)

const (
	CollectionName = "Appointments"
)

// ListFilter narrows appointment listings. Zero values mean "no filter".
type ListFilter struct {
	CustomerID string
	ProviderID string
	Status     config.AppointmentStatus
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindOverlapping(ctx context.Context, providerID string, start, end time.Time) ([]*model.Appointment, error)
	FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Appointment, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	UpdateStatusCAS(ctx context.Context, id string, expected, next config.AppointmentStatus) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoAppointmentRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoAppointmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining > timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	appt.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, appt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appt.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", appointmenterrors.ErrInvalidID, id)
	}

	var appt model.Appointment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", appointmenterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return &appt, nil
}

// FindOverlapping returns the provider's non-cancelled appointments whose
// interval intersects [start, end). The scheduled_time filter widens the
// window by the maximum duration; exact overlap is re-checked in memory.
func (r *mongoAppointmentRepository) FindOverlapping(ctx context.Context, providerID string, start, end time.Time) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	earliestStart := start.Add(-time.Duration(r.cfg.MaxAppointmentMinutes) * time.Minute)

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$ne": config.Cancelled},
		"scheduled_time": bson.M{
			"$gte": earliestStart,
			"$lt":  end,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []*model.Appointment
	if err = cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping appointments: %w", err)
	}

	overlapping := candidates[:0]
	for _, a := range candidates {
		if model.Overlaps(a.ScheduledTime, a.EndTime(), start, end) {
			overlapping = append(overlapping, a)
		}
	}
	return overlapping, nil
}

func (filter ListFilter) toBson() bson.M {
	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.ProviderID != "" {
		query["provider_id"] = filter.ProviderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

func (r *mongoAppointmentRepository) FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "scheduled_time", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter.toBson(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

func (r *mongoAppointmentRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter.toBson())
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// UpdateStatusCAS performs the compare-and-set transition: the update matches
// only when the stored status still equals `expected`. A zero match count
// means the document is gone or another request transitioned it first.
func (r *mongoAppointmentRepository) UpdateStatusCAS(ctx context.Context, id string, expected, next config.AppointmentStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", appointmenterrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": expected}
	update := bson.M{"$set": bson.M{"status": next}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", appointmenterrors.ErrStaleStatus, id)
	}
	return nil
}

func (r *mongoAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
