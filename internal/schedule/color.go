package schedule

import (
	"strings"

	"liftlog/internal/domain"
)

// Labels maps each day type to its display name.
var Labels = map[domain.WorkoutDayType]string{
	domain.DayPush:     "Push",
	domain.DayPull:     "Pull",
	domain.DayLegs:     "Legs",
	domain.DayRest:     "Rest",
	domain.DayCardio:   "Cardio",
	domain.DayUpper:    "Upper Body",
	domain.DayLower:    "Lower Body",
	domain.DayFullBody: "Full Body",
}

// DefaultColors is the built-in hex color per day type, used whenever the
// user has no override for that type.
var DefaultColors = map[domain.WorkoutDayType]string{
	domain.DayPush:     "#3B82F6",
	domain.DayPull:     "#A855F7",
	domain.DayLegs:     "#F97316",
	domain.DayRest:     "#9CA3AF",
	domain.DayCardio:   "#22C55E",
	domain.DayUpper:    "#6366F1",
	domain.DayLower:    "#14B8A6",
	domain.DayFullBody: "#EF4444",
}

// paletteTokens maps a hex value to its discrete palette bucket, matched
// by exact (case-insensitive) comparison. The token is a display hint for
// clients that theme by bucket rather than raw hex.
var paletteTokens = map[string]string{
	"#3B82F6": "blue",
	"#A855F7": "purple",
	"#F97316": "orange",
	"#9CA3AF": "gray",
	"#22C55E": "green",
	"#6366F1": "indigo",
	"#14B8A6": "teal",
	"#EF4444": "red",
	"#EC4899": "pink",
	"#F59E0B": "amber",
	"#84CC16": "lime",
	"#06B6D4": "cyan",
	"#8B5CF6": "violet",
	"#F43F5E": "rose",
}

// defaultToken is the bucket used when a custom hex matches nothing in
// the palette. Not an error: the token is display-only.
const defaultToken = "blue"

// Color is a resolved display color: the hex value plus its palette
// bucket token.
type Color struct {
	Hex   string `json:"hex"`
	Token string `json:"token"`
}

// ColorFor resolves the display color for a day type. A non-empty entry
// in overrides (keyed by the day type string) wins over the built-in
// default.
func ColorFor(dayType domain.WorkoutDayType, overrides map[string]string) Color {
	if hex := overrides[string(dayType)]; hex != "" {
		return Color{Hex: hex, Token: tokenFor(hex)}
	}
	hex := DefaultColors[dayType]
	return Color{Hex: hex, Token: tokenFor(hex)}
}

func tokenFor(hex string) string {
	if token, ok := paletteTokens[strings.ToUpper(hex)]; ok {
		return token
	}
	return defaultToken
}
