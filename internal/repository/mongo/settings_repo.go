package mongo

import (
	"context"
	"errors"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollectionName = "user_settings"

// mongoSettingsRepository implements repository.SettingsRepository.
// There is at most one settings document per user, enforced by a unique
// index on ownerId.
type mongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new user settings repository.
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection(settingsCollectionName),
	}
}

// GetByOwner retrieves the user's settings record, or ErrNotFound when
// the user has never customized anything.
func (r *mongoSettingsRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Create inserts the user's settings record.
func (r *mongoSettingsRepository) Create(ctx context.Context, settings *domain.UserSettings) (primitive.ObjectID, error) {
	if settings.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("settings require ownerId")
	}

	settings.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, settings)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted settings ID")
	}
	return insertedID, nil
}

// Update replaces the mutable settings fields and refreshes updatedAt.
func (r *mongoSettingsRepository) Update(ctx context.Context, settings *domain.UserSettings) error {
	if settings.OwnerID == primitive.NilObjectID {
		return errors.New("settings ownerId is required for update")
	}

	filter := bson.M{"ownerId": settings.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"weightUnit":    settings.WeightUnit,
			"workoutColors": settings.WorkoutColors,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSettingsIndexes creates necessary indexes. Call during startup.
func EnsureSettingsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
