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

	availabilityerrors "notarynow/internal/availability/errors"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	"notarynow/pkg/model"
)

const (
	CollectionName = "Availability_templates"
)

type TemplateRepository interface {
	FindByProvider(ctx context.Context, providerID string) (*model.WeeklyTemplate, error)
	Replace(ctx context.Context, tmpl *model.WeeklyTemplate) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoTemplateRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoTemplateRepository(cfg *config.Config) TemplateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTemplateRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoTemplateRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoTemplateRepository) FindByProvider(ctx context.Context, providerID string) (*model.WeeklyTemplate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"provider_id": providerID}

	var tmpl model.WeeklyTemplate
	err := r.collection.FindOne(ctx, filter).Decode(&tmpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availabilityerrors.ErrTemplateNotFound, providerID)
		}
		return nil, fmt.Errorf("failed to find availability template: %w", err)
	}

	return &tmpl, nil
}

// Replace upserts the full week for the provider. There are no partial-day
// patches; callers always submit all seven days.
func (r *mongoTemplateRepository) Replace(ctx context.Context, tmpl *model.WeeklyTemplate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	tmpl.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"provider_id": tmpl.ProviderID}
	update := bson.M{
		"$set": bson.M{
			"provider_id": tmpl.ProviderID,
			"days":        tmpl.Days,
			"updated_at":  tmpl.UpdatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to replace availability template: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		tmpl.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTemplateRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
