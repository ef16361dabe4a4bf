package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog is one completed workout session. TemplateID is optional:
// freestyle sessions are logged without a template, and the reference is
// kept even if the template is later deleted (the name is denormalized
// into each set entry instead).
type WorkoutLog struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID         primitive.ObjectID  `bson:"ownerId" json:"ownerId"`
	TemplateID      *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	Date            time.Time           `bson:"date" json:"date"` // Calendar date of the session, midnight UTC
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	DurationMinutes *int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Sets            []SetEntry          `bson:"sets" json:"sets"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SetEntry records a single performed set: which exercise, how heavy, how
// many reps. SetNumber counts sets of the same exercise (1-based);
// OrderIndex orders entries within the session.
type SetEntry struct {
	ExerciseName string  `bson:"exerciseName" json:"exerciseName"`
	Weight       float64 `bson:"weight" json:"weight"`
	Reps         int     `bson:"reps" json:"reps"`
	SetNumber    int     `bson:"setNumber" json:"setNumber"`
	OrderIndex   int     `bson:"orderIndex" json:"orderIndex"`
}
