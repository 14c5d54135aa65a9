package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestExpandPlanWeeklyThreeMonths(t *testing.T) {
	start := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)

	got, err := ExpandPlan(start, FreqWeekly, SpanThreeMonths)
	if err != nil {
		t.Fatalf("ExpandPlan: %v", err)
	}

	if len(got) != 13 {
		t.Fatalf("got %d occurrences, want 13", len(got))
	}
	if !got[0].Equal(start) {
		t.Errorf("first occurrence = %v, want the start itself", got[0])
	}

	last := time.Date(2025, time.March, 31, 14, 0, 0, 0, time.UTC)
	if !got[len(got)-1].Equal(last) {
		t.Errorf("last occurrence = %v, want %v", got[len(got)-1], last)
	}

	limit := time.Date(2025, time.April, 6, 14, 0, 0, 0, time.UTC)
	for i, occ := range got {
		if occ.After(limit) {
			t.Errorf("occurrence %d = %v is past the span limit %v", i, occ, limit)
		}
		if i > 0 && !occ.Equal(got[i-1].AddDate(0, 0, 7)) {
			t.Errorf("occurrence %d = %v is not one week after %v", i, occ, got[i-1])
		}
	}
}

func TestExpandPlanBiweekly(t *testing.T) {
	start := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	got, err := ExpandPlan(start, FreqBiweekly, SpanThreeMonths)
	if err != nil {
		t.Fatalf("ExpandPlan: %v", err)
	}

	for i := 1; i < len(got); i++ {
		if !got[i].Equal(got[i-1].AddDate(0, 0, 14)) {
			t.Errorf("occurrence %d = %v is not two weeks after %v", i, got[i], got[i-1])
		}
	}
	if len(got) != 7 {
		t.Errorf("got %d occurrences, want 7", len(got))
	}
}

// Monthly recurrence from the 31st must clamp February without losing
// the 31st on later months.
func TestExpandPlanMonthlyClamping(t *testing.T) {
	start := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)

	got, err := ExpandPlan(start, FreqMonthly, SpanThreeMonths)
	if err != nil {
		t.Fatalf("ExpandPlan: %v", err)
	}

	want := []time.Time{
		time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 30, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandPlanOneYear(t *testing.T) {
	start := time.Date(2025, time.February, 3, 16, 0, 0, 0, time.UTC)

	got, err := ExpandPlan(start, FreqMonthly, SpanOneYear)
	if err != nil {
		t.Fatalf("ExpandPlan: %v", err)
	}
	if len(got) != 13 {
		t.Errorf("got %d monthly occurrences over a year, want 13", len(got))
	}
}

func TestExpandPlanInvalidInputs(t *testing.T) {
	start := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)

	if _, err := ExpandPlan(start, Frequency("daily"), SpanThreeMonths); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("got %v, want ErrInvalidFrequency", err)
	}
	if _, err := ExpandPlan(start, FreqWeekly, Span("2weeks")); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("got %v, want ErrInvalidSpan", err)
	}
}

func TestParseFrequencyAndSpan(t *testing.T) {
	for _, s := range []string{"weekly", "biweekly", "monthly"} {
		if _, err := ParseFrequency(s); err != nil {
			t.Errorf("ParseFrequency(%q): %v", s, err)
		}
	}
	if _, err := ParseFrequency("yearly"); !errors.Is(err, ErrInvalidFrequency) {
		t.Error("expected ErrInvalidFrequency")
	}

	for _, s := range []string{"3months", "6months", "1year"} {
		if _, err := ParseSpan(s); err != nil {
			t.Errorf("ParseSpan(%q): %v", s, err)
		}
	}
	if _, err := ParseSpan("forever"); !errors.Is(err, ErrInvalidSpan) {
		t.Error("expected ErrInvalidSpan")
	}
}

func TestWeeklyTimes(t *testing.T) {
	base := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	nine, _ := ParseClock("09:00")
	ten, _ := ParseClock("10:00")

	got := WeeklyTimes(base, 3, []time.Time{nine, ten})
	if len(got) != 6 {
		t.Fatalf("got %d occurrences, want 6", len(got))
	}

	if !got[0].Equal(time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("first occurrence = %v", got[0])
	}
	if !got[5].Equal(time.Date(2025, time.January, 20, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("last occurrence = %v", got[5])
	}
}

func TestWeeklyTimesDefaultsToOneWeek(t *testing.T) {
	base := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	nine, _ := ParseClock("09:00")

	if got := WeeklyTimes(base, 0, []time.Time{nine}); len(got) != 1 {
		t.Errorf("got %d occurrences, want 1", len(got))
	}
}
