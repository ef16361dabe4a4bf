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

const logCollectionName = "workout_logs"

// mongoLogRepository implements repository.LogRepository.
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new workout log repository.
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Create inserts a new workout log with its embedded set entries.
func (r *mongoLogRepository) Create(ctx context.Context, workoutLog *domain.WorkoutLog) (primitive.ObjectID, error) {
	if workoutLog.OwnerID == primitive.NilObjectID || workoutLog.Date.IsZero() {
		return primitive.NilObjectID, errors.New("workout log requires ownerId and date")
	}

	workoutLog.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workoutLog.CreatedAt = now
	workoutLog.UpdatedAt = now
	if workoutLog.Sets == nil {
		workoutLog.Sets = []domain.SetEntry{}
	}

	result, err := r.collection.InsertOne(ctx, workoutLog)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout log by its ID.
func (r *mongoLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var workoutLog domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workoutLog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workoutLog, nil
}

// GetByOwner retrieves a user's logs, most recent session first, with an
// optional inclusive date range on the session date.
func (r *mongoLogRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error) {
	filter := bson.M{"ownerId": ownerID}
	if from != nil || to != nil {
		dateFilter := bson.M{}
		if from != nil {
			dateFilter["$gte"] = *from
		}
		if to != nil {
			dateFilter["$lte"] = *to
		}
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update replaces the mutable fields of a log, including the set list.
func (r *mongoLogRepository) Update(ctx context.Context, workoutLog *domain.WorkoutLog) error {
	if workoutLog.ID == primitive.NilObjectID {
		return errors.New("log ID is required for update")
	}

	filter := bson.M{"_id": workoutLog.ID, "ownerId": workoutLog.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"templateId":      workoutLog.TemplateID,
			"date":            workoutLog.Date,
			"notes":           workoutLog.Notes,
			"durationMinutes": workoutLog.DurationMinutes,
			"sets":            workoutLog.Sets,
			"updatedAt":       time.Now().UTC(),
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

// Delete removes a log, scoped to its owner.
func (r *mongoLogRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureLogIndexes creates necessary indexes. Call during startup.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History view: a user's sessions ordered by date.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
