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

const photoCollectionName = "progress_photos"

// mongoPhotoRepository implements repository.PhotoRepository. Only photo
// metadata lives here; the image bytes are in S3 under ObjectKey.
type mongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new progress photo repository.
func NewMongoPhotoRepository(db *mongo.Database) repository.PhotoRepository {
	return &mongoPhotoRepository{
		collection: db.Collection(photoCollectionName),
	}
}

// Create inserts a new photo metadata record.
func (r *mongoPhotoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	if photo.OwnerID == primitive.NilObjectID || photo.ObjectKey == "" || photo.URL == "" {
		return primitive.NilObjectID, errors.New("photo requires ownerId, objectKey and url")
	}

	photo.ID = primitive.NewObjectID()
	photo.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, photo)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted photo ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single photo record by its ID.
func (r *mongoPhotoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error) {
	var photo domain.ProgressPhoto
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetByOwner retrieves all of a user's photos, most recent week first.
func (r *mongoPhotoRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "weekDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []domain.ProgressPhoto
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Update replaces the mutable metadata fields (week date and notes). The
// stored object itself is immutable; replacing a picture means deleting
// and re-uploading.
func (r *mongoPhotoRepository) Update(ctx context.Context, photo *domain.ProgressPhoto) error {
	if photo.ID == primitive.NilObjectID {
		return errors.New("photo ID is required for update")
	}

	filter := bson.M{"_id": photo.ID, "ownerId": photo.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"weekDate": photo.WeekDate,
			"notes":    photo.Notes,
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

// Delete removes a photo record, scoped to its owner.
func (r *mongoPhotoRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePhotoIndexes creates necessary indexes. Call during startup.
func EnsurePhotoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "weekDate", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
