package domain

import "time"

// WorkoutDayType is the closed set of labels a calendar day can carry in
// a repeating schedule. Extending it requires updating the label and
// default color tables in internal/schedule in lockstep.
type WorkoutDayType string

const (
	DayPush     WorkoutDayType = "push"
	DayPull     WorkoutDayType = "pull"
	DayLegs     WorkoutDayType = "legs"
	DayRest     WorkoutDayType = "rest"
	DayCardio   WorkoutDayType = "cardio"
	DayUpper    WorkoutDayType = "upper"
	DayLower    WorkoutDayType = "lower"
	DayFullBody WorkoutDayType = "full_body"
)

// WorkoutDayTypes lists every valid day type in display order.
var WorkoutDayTypes = []WorkoutDayType{
	DayPush, DayPull, DayLegs, DayRest, DayCardio, DayUpper, DayLower, DayFullBody,
}

// IsValid reports whether t is one of the known day types.
func (t WorkoutDayType) IsValid() bool {
	for _, known := range WorkoutDayTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Schedule is a repeating workout routine: Pattern[0] applies on
// StartDate, Pattern[1] the day after, wrapping around indefinitely.
// Pattern must never be empty (enforced at creation). Schedules are kept
// in the local store rather than MongoDB, so the ID is a UUID string and
// OwnerID the hex form of the user's ObjectID.
type Schedule struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"ownerId"`
	Name      string           `json:"name"`
	Pattern   []WorkoutDayType `json:"pattern"`
	StartDate time.Time        `json:"startDate"` // Midnight UTC
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// SchedulePatch carries the mutable schedule fields for a merge update.
// Nil (or nil-slice) fields are left unchanged.
type SchedulePatch struct {
	Name      *string
	Pattern   []WorkoutDayType
	StartDate *time.Time
}
