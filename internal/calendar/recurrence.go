package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	ErrInvalidSpan      = errors.New("invalid recurrence span")
)

// Frequency is the step between occurrences of a recurring plan.
type Frequency string

const (
	FreqWeekly   Frequency = "weekly"
	FreqBiweekly Frequency = "biweekly"
	FreqMonthly  Frequency = "monthly"
)

// Span bounds how far a recurring plan extends past its first occurrence.
type Span string

const (
	SpanThreeMonths Span = "3months"
	SpanSixMonths   Span = "6months"
	SpanOneYear     Span = "1year"
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FreqWeekly, FreqBiweekly, FreqMonthly:
		return Frequency(s), nil
	}
	return "", ErrInvalidFrequency
}

func ParseSpan(s string) (Span, error) {
	switch Span(s) {
	case SpanThreeMonths, SpanSixMonths, SpanOneYear:
		return Span(s), nil
	}
	return "", ErrInvalidSpan
}

func spanEnd(start time.Time, span Span) (time.Time, error) {
	switch span {
	case SpanThreeMonths:
		return AddMonths(start, 3), nil
	case SpanSixMonths:
		return AddMonths(start, 6), nil
	case SpanOneYear:
		return AddMonths(start, 12), nil
	}
	return time.Time{}, ErrInvalidSpan
}

// ExpandPlan enumerates the occurrences of a recurring plan: start, then
// start plus one interval at a time (7 days, 14 days, or one calendar
// month), stopping before the first occurrence past start+span. The first
// element is always start and the sequence is strictly increasing.
func ExpandPlan(start time.Time, freq Frequency, span Span) ([]time.Time, error) {
	limit, err := spanEnd(start, span)
	if err != nil {
		return nil, err
	}

	occurrences := []time.Time{start}
	cur := start
	step := 1
	for {
		var next time.Time
		switch freq {
		case FreqWeekly:
			next = cur.AddDate(0, 0, 7)
		case FreqBiweekly:
			next = cur.AddDate(0, 0, 14)
		case FreqMonthly:
			// Step from the anchor so a clamped short month does not
			// shift every later occurrence off the original day.
			next = AddMonths(start, step)
		default:
			return nil, ErrInvalidFrequency
		}
		if next.After(limit) {
			break
		}
		occurrences = append(occurrences, next)
		cur = next
		step++
	}

	return occurrences, nil
}

// WeeklyTimes enumerates weeks × times occurrences by adding whole-week
// offsets to baseDate and combining each with the given times of day.
// This is the simpler generator behind free-slot schedule creation.
func WeeklyTimes(baseDate time.Time, weeks int, times []time.Time) []time.Time {
	if weeks < 1 {
		weeks = 1
	}
	out := make([]time.Time, 0, weeks*len(times))
	for week := 0; week < weeks; week++ {
		day := baseDate.AddDate(0, 0, 7*week)
		for _, t := range times {
			out = append(out, CombineDateTime(day, t))
		}
	}
	return out
}
