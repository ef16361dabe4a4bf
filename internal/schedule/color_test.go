package schedule

import (
	"testing"

	"liftlog/internal/domain"
)

func TestColorForDefaults(t *testing.T) {
	t.Parallel()

	// Every known day type must have a default color and a label.
	for _, dayType := range domain.WorkoutDayTypes {
		color := ColorFor(dayType, nil)
		if color.Hex == "" {
			t.Errorf("no default color for %q", dayType)
		}
		if color.Token == "" {
			t.Errorf("no token for %q", dayType)
		}
		if Labels[dayType] == "" {
			t.Errorf("no label for %q", dayType)
		}
	}
}

func TestColorForOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dayType   domain.WorkoutDayType
		overrides map[string]string
		wantHex   string
		wantToken string
	}{
		{
			name:      "no overrides uses default",
			dayType:   domain.DayPush,
			overrides: nil,
			wantHex:   "#3B82F6",
			wantToken: "blue",
		},
		{
			name:      "override from the palette",
			dayType:   domain.DayPush,
			overrides: map[string]string{"push": "#EC4899"},
			wantHex:   "#EC4899",
			wantToken: "pink",
		},
		{
			name:      "lowercase hex still matches its bucket",
			dayType:   domain.DayLegs,
			overrides: map[string]string{"legs": "#f59e0b"},
			wantHex:   "#f59e0b",
			wantToken: "amber",
		},
		{
			name:      "custom hex outside the palette falls back to blue",
			dayType:   domain.DayCardio,
			overrides: map[string]string{"cardio": "#123456"},
			wantHex:   "#123456",
			wantToken: "blue",
		},
		{
			name:      "override for another type is ignored",
			dayType:   domain.DayPull,
			overrides: map[string]string{"push": "#EC4899"},
			wantHex:   "#A855F7",
			wantToken: "purple",
		},
		{
			name:      "empty override falls through to default",
			dayType:   domain.DayRest,
			overrides: map[string]string{"rest": ""},
			wantHex:   "#9CA3AF",
			wantToken: "gray",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ColorFor(tc.dayType, tc.overrides)
			if got.Hex != tc.wantHex || got.Token != tc.wantToken {
				t.Errorf("ColorFor(%q, %v) = {%s %s}, want {%s %s}",
					tc.dayType, tc.overrides, got.Hex, got.Token, tc.wantHex, tc.wantToken)
			}
		})
	}
}

func TestDefaultColorsAreInPalette(t *testing.T) {
	t.Parallel()

	// Defaults should never hit the fallback token.
	for dayType, hex := range DefaultColors {
		if _, ok := paletteTokens[hex]; !ok {
			t.Errorf("default color %s for %q is not a palette entry", hex, dayType)
		}
	}
}
