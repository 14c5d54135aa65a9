package clinic

import (
	"sort"

	"github.com/google/uuid"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

// SlotWindow is a free window inside one day of availability.
type SlotWindow struct {
	ID          uuid.UUID `json:"id"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	SessionType *string   `json:"session_type,omitempty"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
}

// DayAvailability groups a practitioner's free slots for one calendar
// day, with display labels clients render as-is.
type DayAvailability struct {
	Date    string       `json:"date"`
	Label   string       `json:"label"`
	Weekday string       `json:"weekday"`
	Slots   []SlotWindow `json:"slots"`
}

// BuildAvailability aggregates free slots into per-day availability.
// Booked slots are dropped, days are sorted ascending by date and slots
// by start time, so the output is deterministic regardless of the order
// slots arrive in.
func BuildAvailability(slots []Slot) []DayAvailability {
	byDate := make(map[string][]Slot)
	for _, s := range slots {
		if s.Booked {
			continue
		}
		key := calendar.ISODate(s.Date)
		byDate[key] = append(byDate[key], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]DayAvailability, 0, len(dates))
	for _, d := range dates {
		group := byDate[d]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartTime.Before(group[j].StartTime)
		})

		windows := make([]SlotWindow, 0, len(group))
		for _, s := range group {
			windows = append(windows, SlotWindow{
				ID:          s.ID,
				Start:       s.StartTime.Format("15:04"),
				End:         s.EndTime.Format("15:04"),
				SessionType: s.SessionType,
				PriceCents:  s.PriceCents,
			})
		}

		days = append(days, DayAvailability{
			Date:    d,
			Label:   calendar.FormatDate(group[0].Date),
			Weekday: calendar.WeekdayLabel(group[0].Date),
			Slots:   windows,
		})
	}
	return days
}
