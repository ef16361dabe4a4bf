package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalRecord is a best lift for one exercise, entered manually by the
// user (the app does not derive PRs from logs automatically).
type PersonalRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	Weight       float64            `bson:"weight" json:"weight"`
	Unit         WeightUnit         `bson:"unit" json:"unit"`
	Reps         int                `bson:"reps" json:"reps"`
	Date         time.Time          `bson:"date" json:"date"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
