package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notarynow/internal/migrations/mongo/validators"
)

var (
	AvailabilityTemplateIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	AppointmentIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "provider_id", Value: 1},
			{Key: "scheduled_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "scheduled_time", Value: -1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	ServiceIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	ServiceOfferingIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "service_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	NotificationIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "recipient_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "recipient_id", Value: 1},
			{Key: "read", Value: 1},
		}},
	}

	// The TTL index reaps abandoned locks; the insert on _id is what
	// serializes concurrent bookings for the same slot.
	SlotLockIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	UserIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "active", Value: 1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := []struct {
		Name      string
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		{"Availability_templates", AvailabilityTemplateIndexes, validators.AvailabilityTemplateValidator},
		{"Appointments", AppointmentIndexes, validators.AppointmentValidator},
		{"Services", ServiceIndexes, validators.ServiceValidator},
		{"Service_offerings", ServiceOfferingIndexes, validators.ServiceOfferingValidator},
		{"Notifications", NotificationIndexes, validators.NotificationValidator},
		{"Slot_locks", SlotLockIndexes, validators.SlotLockValidator},
		{"Users", UserIndexes, nil},
	}

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator != nil {
		fmt.Printf("Collection %s already exists, updating validator\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
