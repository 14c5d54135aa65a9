package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	redisclient "github.com/psicare/clinic-scheduling/internal/redis"
)

var (
	ErrInvalidTimeRange = errors.New("slot start time must be before end time")
	ErrSlotBooked       = errors.New("slot is already booked")
)

// SlotService manages the public booking surface: discrete free slots,
// weekly schedule grids and client bookings. Writes that race on the
// same (practitioner, start instant) serialize through the Redis lock;
// the unique slot index is the final arbiter.
type SlotService struct {
	repo   Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewSlotService(repo Repository, locker redisclient.Locker, log zerolog.Logger) *SlotService {
	return &SlotService{repo: repo, locker: locker, log: log}
}

type CreateSlotInput struct {
	PractitionerID uuid.UUID
	Date           time.Time
	StartTime      time.Time
	EndTime        time.Time
	SessionType    *string
	PriceCents     *int64
	Notes          string
}

// CreateSlot creates one bookable window. Creation is idempotent on
// (practitioner, date, start time): repeating the call returns the
// existing slot and created=false instead of an error.
func (s *SlotService) CreateSlot(ctx context.Context, in CreateSlotInput) (*Slot, bool, error) {
	if !in.StartTime.Before(in.EndTime) {
		return nil, false, ErrInvalidTimeRange
	}
	if _, err := s.repo.GetPractitionerByID(ctx, in.PractitionerID); err != nil {
		return nil, false, err
	}

	slot := &Slot{
		ID:             uuid.New(),
		PractitionerID: in.PractitionerID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		SessionType:    in.SessionType,
		PriceCents:     in.PriceCents,
		Notes:          in.Notes,
	}

	var (
		out     *Slot
		created bool
	)
	startsAt := calendar.CombineDateTime(in.Date, in.StartTime)
	err := s.locker.WithScheduleLock(ctx, in.PractitionerID, startsAt, func(ctx context.Context) error {
		ok, err := s.repo.CreateSlot(ctx, slot)
		if err != nil {
			return err
		}
		if ok {
			out, created = slot, true
			return nil
		}
		existing, err := s.repo.GetSlotByKey(ctx, in.PractitionerID, in.Date, in.StartTime)
		if err != nil {
			return err
		}
		out, created = existing, false
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

type CreateScheduleInput struct {
	PractitionerID  uuid.UUID
	BaseDate        time.Time
	Weeks           int
	Times           []time.Time
	DurationMinutes int
	SessionType     *string
	PriceCents      *int64
	Notes           string
}

// CreateSchedule expands a weekly grid (weeks x times of day) into slots
// atomically. Occurrences whose slot already exists are skipped; the
// returned count covers only rows actually inserted, so re-running the
// same grid yields zero.
func (s *SlotService) CreateSchedule(ctx context.Context, in CreateScheduleInput) (int, error) {
	if in.DurationMinutes <= 0 {
		return 0, ErrInvalidTimeRange
	}
	if len(in.Times) == 0 {
		return 0, nil
	}
	duration := time.Duration(in.DurationMinutes) * time.Minute
	for _, t := range in.Times {
		end := t.Add(duration)
		if end.Day() != t.Day() {
			return 0, ErrInvalidTimeRange
		}
	}
	if _, err := s.repo.GetPractitionerByID(ctx, in.PractitionerID); err != nil {
		return 0, err
	}

	occurrences := calendar.WeeklyTimes(in.BaseDate, in.Weeks, in.Times)

	created := 0
	err := s.repo.RunInTransaction(ctx, func(repo Repository) error {
		for _, occ := range occurrences {
			slot := &Slot{
				ID:             uuid.New(),
				PractitionerID: in.PractitionerID,
				Date:           calendar.DateOnly(occ),
				StartTime:      occ,
				EndTime:        occ.Add(duration),
				SessionType:    in.SessionType,
				PriceCents:     in.PriceCents,
				Notes:          in.Notes,
			}
			ok, err := repo.CreateSlot(ctx, slot)
			if err != nil {
				return fmt.Errorf("create slot at %s: %w", occ.Format(time.RFC3339), err)
			}
			if ok {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("practitioner_id", in.PractitionerID.String()).
		Int("requested", len(occurrences)).
		Int("created", created).
		Msg("schedule grid created")
	return created, nil
}

// BookSlot books a free slot for a patient and records the matching
// appointment in one transaction. A slot books at most once; losers of
// the race get ErrSlotBooked.
func (s *SlotService) BookSlot(ctx context.Context, slotID, patientID uuid.UUID) (*Appointment, error) {
	slot, err := s.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Booked {
		return nil, ErrSlotBooked
	}
	if _, err := s.repo.GetPatientByID(ctx, patientID); err != nil {
		return nil, err
	}

	durationMinutes := int(slot.EndTime.Sub(slot.StartTime).Minutes())

	var appt *Appointment
	err = s.locker.WithScheduleLock(ctx, slot.PractitionerID, slot.StartsAt(), func(ctx context.Context) error {
		return s.repo.RunInTransaction(ctx, func(repo Repository) error {
			booked, err := repo.MarkSlotBooked(ctx, slotID)
			if err != nil {
				// The guarded update matches only unbooked rows, so a
				// miss on an existing slot means someone else won.
				if errors.Is(err, ErrSlotNotFound) {
					return ErrSlotBooked
				}
				return err
			}

			appt = &Appointment{
				ID:              uuid.New(),
				PatientID:       patientID,
				PractitionerID:  booked.PractitionerID,
				StartsAt:        booked.StartsAt(),
				Status:          StatusScheduled,
				PriceCents:      booked.PriceCents,
				DurationMinutes: &durationMinutes,
				Notes:           booked.Notes,
			}
			return repo.CreateAppointment(ctx, appt)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("slot_id", slotID.String()).
		Str("appointment_id", appt.ID.String()).
		Msg("slot booked")
	return appt, nil
}

// FreeSlots returns the practitioner's open availability grouped by day.
func (s *SlotService) FreeSlots(ctx context.Context, practitionerID uuid.UUID) ([]DayAvailability, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, practitionerID); err != nil {
		return nil, err
	}
	slots, err := s.repo.ListFreeSlots(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	return BuildAvailability(slots), nil
}

// FreeSlotsByDate returns the open slots of a single day, ordered by
// start time.
func (s *SlotService) FreeSlotsByDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]Slot, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, practitionerID); err != nil {
		return nil, err
	}
	return s.repo.ListFreeSlotsByDate(ctx, practitionerID, date)
}

func (s *SlotService) GetSlot(ctx context.Context, id uuid.UUID) (*Slot, error) {
	return s.repo.GetSlotByID(ctx, id)
}

// UpdateSlot edits the mutable slot fields. The identity key (date and
// start time) never changes; delete and recreate instead.
func (s *SlotService) UpdateSlot(ctx context.Context, id uuid.UUID, upd SlotUpdate) (*Slot, error) {
	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.EndTime != nil && !slot.StartTime.Before(*upd.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	return s.repo.UpdateSlot(ctx, id, upd)
}

// DeleteSlot removes a free slot. Booked slots carry an appointment and
// are kept for the record.
func (s *SlotService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.Booked {
		return ErrSlotBooked
	}
	return s.repo.DeleteSlot(ctx, id)
}
