package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"notarynow/pkg/config"
	"notarynow/pkg/model"
)

const usersCollection = "Users"

// ProviderDirectory answers whether a provider may accept new bookings.
// Users are owned by the identity side; this is a read-only view of the
// replicated user records.
type ProviderDirectory interface {
	FindProvider(ctx context.Context, providerID string) (*model.User, error)
}

type mongoProviderDirectory struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProviderDirectory(cfg *config.Config) ProviderDirectory {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProviderDirectory{
		cfg:        cfg,
		collection: db.Collection(usersCollection),
	}
}

func (r *mongoProviderDirectory) FindProvider(ctx context.Context, providerID string) (*model.User, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format: %s", providerID)
	}

	var user model.User
	err = r.collection.FindOne(queryCtx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find provider: %w", err)
	}

	return &user, nil
}
