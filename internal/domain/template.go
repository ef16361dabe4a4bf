package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutTemplate is a reusable workout definition (e.g. "Push Day A")
// with an ordered list of exercises. Exercises are embedded in the
// template document since they are never fetched on their own.
type WorkoutTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []TemplateExercise `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TemplateExercise is one exercise slot within a template. DefaultWeight
// and DefaultReps pre-fill the logging form; OrderIndex is the display
// position within the template.
type TemplateExercise struct {
	Name          string   `bson:"name" json:"name"`
	DefaultWeight *float64 `bson:"defaultWeight,omitempty" json:"defaultWeight,omitempty"`
	DefaultReps   *int     `bson:"defaultReps,omitempty" json:"defaultReps,omitempty"`
	OrderIndex    int      `bson:"orderIndex" json:"orderIndex"`
}
