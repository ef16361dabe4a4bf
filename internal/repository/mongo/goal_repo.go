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

const goalCollectionName = "fitness_goals"

// mongoGoalRepository implements repository.GoalRepository.
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a new fitness goal repository.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// Create inserts a new goal. New goals always start un-achieved.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.FitnessGoal) (primitive.ObjectID, error) {
	if goal.OwnerID == primitive.NilObjectID || goal.Title == "" {
		return primitive.NilObjectID, errors.New("goal requires ownerId and title")
	}

	goal.ID = primitive.NewObjectID()
	goal.Achieved = false
	goal.AchievedDate = nil
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted goal ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single goal by its ID.
func (r *mongoGoalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessGoal, error) {
	var goal domain.FitnessGoal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// GetByOwner retrieves all of a user's goals, newest first.
func (r *mongoGoalRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error) {
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []domain.FitnessGoal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Update replaces the mutable fields of a goal, including its achieved
// state and date.
func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.FitnessGoal) error {
	if goal.ID == primitive.NilObjectID {
		return errors.New("goal ID is required for update")
	}

	filter := bson.M{"_id": goal.ID, "ownerId": goal.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"title":        goal.Title,
			"description":  goal.Description,
			"category":     goal.Category,
			"targetValue":  goal.TargetValue,
			"targetUnit":   goal.TargetUnit,
			"achieved":     goal.Achieved,
			"achievedDate": goal.AchievedDate,
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

// Delete removes a goal, scoped to its owner.
func (r *mongoGoalRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureGoalIndexes creates necessary indexes. Call during startup.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
