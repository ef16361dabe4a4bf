package schedule

import (
	"testing"
	"time"

	"liftlog/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   date(2024, time.January, 1),
			want: date(2024, time.January, 1),
		},
		{
			name: "afternoon wall clock",
			in:   time.Date(2024, time.March, 15, 17, 42, 9, 123, time.UTC),
			want: date(2024, time.March, 15),
		},
		{
			name: "non-UTC location keeps its calendar date",
			in:   time.Date(2024, time.June, 30, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*3600)),
			want: date(2024, time.June, 30),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); !got.Equal(tc.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveDay(t *testing.T) {
	t.Parallel()

	// Four-day rotation anchored on a Monday.
	sched := &domain.Schedule{
		ID:        "s1",
		Name:      "PPL + rest",
		Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayLegs, domain.DayRest},
		StartDate: date(2024, time.January, 1),
	}

	tests := []struct {
		name     string
		date     time.Time
		wantType domain.WorkoutDayType
		wantOK   bool
	}{
		{"start date is pattern[0]", date(2024, time.January, 1), domain.DayPush, true},
		{"second day", date(2024, time.January, 2), domain.DayPull, true},
		{"fourth day", date(2024, time.January, 4), domain.DayRest, true},
		{"wraps to pattern[0]", date(2024, time.January, 5), domain.DayPush, true},
		{"far future still wraps", date(2024, time.January, 1).AddDate(0, 0, 4*100+2), domain.DayLegs, true},
		{"day before the anchor", date(2023, time.December, 31), "", false},
		{"well before the anchor", date(2020, time.July, 4), "", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotType, gotOK := ResolveDay(sched, tc.date)
			if gotType != tc.wantType || gotOK != tc.wantOK {
				t.Errorf("ResolveDay(%v) = (%q, %v), want (%q, %v)",
					tc.date, gotType, gotOK, tc.wantType, tc.wantOK)
			}
		})
	}
}

func TestResolveDayIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{
		Pattern:   []domain.WorkoutDayType{domain.DayUpper, domain.DayLower},
		StartDate: time.Date(2024, time.May, 6, 9, 30, 0, 0, time.UTC), // unnormalized anchor
	}

	morning, _ := ResolveDay(sched, time.Date(2024, time.May, 7, 1, 0, 0, 0, time.UTC))
	evening, _ := ResolveDay(sched, time.Date(2024, time.May, 7, 23, 59, 0, 0, time.UTC))
	if morning != evening {
		t.Errorf("same calendar date resolved differently: %q vs %q", morning, evening)
	}
	if morning != domain.DayLower {
		t.Errorf("day after anchor = %q, want %q", morning, domain.DayLower)
	}
}

func TestResolveDayEmptyPattern(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{StartDate: date(2024, time.January, 1)}
	if _, ok := ResolveDay(sched, date(2024, time.January, 1)); ok {
		t.Error("empty pattern resolved a workout, want none")
	}
}

func TestResolveDaySingleEntryPattern(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{
		Pattern:   []domain.WorkoutDayType{domain.DayCardio},
		StartDate: date(2024, time.February, 1),
	}
	for offset := 0; offset < 10; offset++ {
		got, ok := ResolveDay(sched, date(2024, time.February, 1).AddDate(0, 0, offset))
		if !ok || got != domain.DayCardio {
			t.Fatalf("offset %d: got (%q, %v), want (cardio, true)", offset, got, ok)
		}
	}
}

func TestUpcoming(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{
		Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayLegs, domain.DayRest},
		StartDate: date(2024, time.January, 1),
	}

	days := Upcoming(sched, date(2024, time.January, 3), 3)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}

	want := []struct {
		date     time.Time
		dayType  domain.WorkoutDayType
		schedule bool
	}{
		{date(2024, time.January, 3), domain.DayLegs, true},
		{date(2024, time.January, 4), domain.DayRest, true},
		{date(2024, time.January, 5), domain.DayPush, true},
	}
	for i, w := range want {
		got := days[i]
		if !got.Date.Equal(w.date) || got.Type != w.dayType || got.Scheduled != w.schedule {
			t.Errorf("days[%d] = {%v %q %v}, want {%v %q %v}",
				i, got.Date, got.Type, got.Scheduled, w.date, w.dayType, w.schedule)
		}
	}
}

func TestUpcomingSpansAnchor(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{
		Pattern:   []domain.WorkoutDayType{domain.DayFullBody, domain.DayRest},
		StartDate: date(2024, time.January, 10),
	}

	// Window starts two days before the anchor.
	days := Upcoming(sched, date(2024, time.January, 8), 4)
	if len(days) != 4 {
		t.Fatalf("len(days) = %d, want 4", len(days))
	}
	for i := 0; i < 2; i++ {
		if days[i].Scheduled {
			t.Errorf("days[%d] before the anchor is scheduled, want unscheduled", i)
		}
	}
	if !days[2].Scheduled || days[2].Type != domain.DayFullBody {
		t.Errorf("anchor day = {%q %v}, want {full_body true}", days[2].Type, days[2].Scheduled)
	}
	if !days[3].Scheduled || days[3].Type != domain.DayRest {
		t.Errorf("anchor+1 = {%q %v}, want {rest true}", days[3].Type, days[3].Scheduled)
	}
}

func TestUpcomingDeterministic(t *testing.T) {
	t.Parallel()

	sched := &domain.Schedule{
		Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayLegs},
		StartDate: date(2024, time.March, 1),
	}

	first := Upcoming(sched, date(2024, time.March, 10), 7)
	second := Upcoming(sched, date(2024, time.March, 10), 7)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d differs between identical calls: %v vs %v", i, first[i], second[i])
		}
	}
	// Consecutive dates, exactly window entries.
	for i, day := range first {
		want := date(2024, time.March, 10).AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Errorf("entry %d date = %v, want %v", i, day.Date, want)
		}
	}
}

func TestAddDays(t *testing.T) {
	t.Parallel()

	got := AddDays(time.Date(2024, time.February, 28, 13, 0, 0, 0, time.UTC), 2)
	want := date(2024, time.March, 1) // 2024 is a leap year
	if !got.Equal(want) {
		t.Errorf("AddDays = %v, want %v", got, want)
	}
}
