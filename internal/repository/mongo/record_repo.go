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

const recordCollectionName = "personal_records"

// mongoRecordRepository implements repository.RecordRepository.
type mongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRecordRepository creates a new personal record repository.
func NewMongoRecordRepository(db *mongo.Database) repository.RecordRepository {
	return &mongoRecordRepository{
		collection: db.Collection(recordCollectionName),
	}
}

// Create inserts a new personal record.
func (r *mongoRecordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error) {
	if record.OwnerID == primitive.NilObjectID || record.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("personal record requires ownerId and exerciseName")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted record ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single record by its ID.
func (r *mongoRecordRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PersonalRecord, error) {
	var record domain.PersonalRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByOwner retrieves all of a user's records, most recent date first.
func (r *mongoRecordRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PersonalRecord, error) {
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.PersonalRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update replaces the mutable fields of a record.
func (r *mongoRecordRepository) Update(ctx context.Context, record *domain.PersonalRecord) error {
	if record.ID == primitive.NilObjectID {
		return errors.New("record ID is required for update")
	}

	filter := bson.M{"_id": record.ID, "ownerId": record.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"exerciseName": record.ExerciseName,
			"weight":       record.Weight,
			"unit":         record.Unit,
			"reps":         record.Reps,
			"date":         record.Date,
			"notes":        record.Notes,
			"updatedAt":    time.Now().UTC(),
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

// Delete removes a record, scoped to its owner.
func (r *mongoRecordRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRecordIndexes creates necessary indexes. Call during startup.
func EnsureRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
