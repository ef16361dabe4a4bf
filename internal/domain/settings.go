package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightUnit is the user's preferred display unit for weights.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// IsValid reports whether u is one of the known units.
func (u WeightUnit) IsValid() bool {
	return u == UnitKg || u == UnitLbs
}

// UserSettings is the single per-user preferences record. It is created
// lazily with defaults on first access and updated in place afterwards.
// WorkoutColors maps a workout day type to a hex color overriding the
// built-in palette; absent entries fall back to the defaults.
type UserSettings struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID       primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	WeightUnit    WeightUnit         `bson:"weightUnit" json:"weightUnit"`
	WorkoutColors map[string]string  `bson:"workoutColors,omitempty" json:"workoutColors,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
