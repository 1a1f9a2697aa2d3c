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

	catalogerrors "notarynow/internal/catalog/errors"
	"notarynow/pkg/config"
	"notarynow/pkg/model"
)

const (
	OfferingsCollection = "Service_offerings"
)

// OfferingRepository stores provider opt-ins keyed by (provider_id,
// service_id); Upsert keeps at most one document per pair.
type OfferingRepository interface {
	Upsert(ctx context.Context, offering *model.ServiceOffering) error
	Delete(ctx context.Context, providerID, serviceID string) error
	Find(ctx context.Context, providerID, serviceID string) (*model.ServiceOffering, error)
	FindByProvider(ctx context.Context, providerID string) ([]*model.ServiceOffering, error)
}

type mongoOfferingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOfferingRepository(cfg *config.Config) OfferingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOfferingRepository{
		cfg:        cfg,
		collection: db.Collection(OfferingsCollection),
	}
}

func (r *mongoOfferingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOfferingRepository) Upsert(ctx context.Context, offering *model.ServiceOffering) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": offering.ProviderID,
		"service_id":  offering.ServiceID,
	}
	update := bson.M{
		"$set": bson.M{
			"provider_id":  offering.ProviderID,
			"service_id":   offering.ServiceID,
			"custom_price": offering.CustomPrice,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert offering: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		offering.ID = oid.Hex()
	}
	return nil
}

func (r *mongoOfferingRepository) Delete(ctx context.Context, providerID, serviceID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"provider_id": providerID,
		"service_id":  serviceID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete offering: %w", err)
	}
	if result.DeletedCount == 0 {
		return catalogerrors.ErrOfferingNotFound
	}
	return nil
}

func (r *mongoOfferingRepository) Find(ctx context.Context, providerID, serviceID string) (*model.ServiceOffering, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var offering model.ServiceOffering
	err := r.collection.FindOne(ctx, bson.M{
		"provider_id": providerID,
		"service_id":  serviceID,
	}).Decode(&offering)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("failed to find offering: %w", err)
	}

	return &offering, nil
}

func (r *mongoOfferingRepository) FindByProvider(ctx context.Context, providerID string) ([]*model.ServiceOffering, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"provider_id": providerID},
		options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	defer cursor.Close(ctx)

	offerings := []*model.ServiceOffering{}
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, fmt.Errorf("failed to decode offerings: %w", err)
	}

	return offerings, nil
}
