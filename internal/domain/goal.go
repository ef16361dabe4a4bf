package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessGoal is a user-defined target ("Squat 140kg", "Run 5k").
// AchievedDate is set when the goal is marked achieved and cleared when
// it is un-marked.
type FitnessGoal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	TargetValue  *float64           `bson:"targetValue,omitempty" json:"targetValue,omitempty"`
	TargetUnit   string             `bson:"targetUnit,omitempty" json:"targetUnit,omitempty"`
	Achieved     bool               `bson:"achieved" json:"achieved"`
	AchievedDate *time.Time         `bson:"achievedDate,omitempty" json:"achievedDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
