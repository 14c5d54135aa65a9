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

var ErrAppointmentExists = errors.New("appointment already exists at this time")

// AppointmentService manages booking appointments created directly by
// the practitioner, outside the free-slot flow. Duplicates are keyed on
// (patient, practitioner, start instant).
type AppointmentService struct {
	repo   Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewAppointmentService(repo Repository, locker redisclient.Locker, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, locker: locker, log: log}
}

type AppointmentInput struct {
	PatientID       uuid.UUID
	PractitionerID  uuid.UUID
	StartsAt        time.Time
	PriceCents      *int64
	DurationMinutes *int
	Notes           string
}

func (s *AppointmentService) validateParties(ctx context.Context, in AppointmentInput) error {
	if _, err := s.repo.GetPractitionerByID(ctx, in.PractitionerID); err != nil {
		return err
	}
	if _, err := s.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return err
	}
	return nil
}

// Schedule creates a single appointment. An existing appointment for the
// same patient at the same instant is an error, not a silent overwrite.
func (s *AppointmentService) Schedule(ctx context.Context, in AppointmentInput) (*Appointment, error) {
	if err := s.validateParties(ctx, in); err != nil {
		return nil, err
	}

	appt := &Appointment{
		ID:              uuid.New(),
		PatientID:       in.PatientID,
		PractitionerID:  in.PractitionerID,
		StartsAt:        in.StartsAt,
		Status:          StatusScheduled,
		PriceCents:      in.PriceCents,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	}

	err := s.locker.WithScheduleLock(ctx, in.PractitionerID, in.StartsAt, func(ctx context.Context) error {
		_, err := s.repo.GetAppointmentAt(ctx, in.PatientID, in.PractitionerID, in.StartsAt)
		if err == nil {
			return ErrAppointmentExists
		}
		if !errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		return s.repo.CreateAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// BatchResult reports how a recurring batch went: occurrences that
// already had an appointment are skipped, not failed.
type BatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ScheduleRecurring expands a recurring plan and creates an appointment
// per occurrence in one transaction, skipping instants the patient is
// already booked at.
func (s *AppointmentService) ScheduleRecurring(ctx context.Context, in AppointmentInput, freq calendar.Frequency, span calendar.Span) (BatchResult, error) {
	if err := s.validateParties(ctx, in); err != nil {
		return BatchResult{}, err
	}

	occurrences, err := calendar.ExpandPlan(in.StartsAt, freq, span)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	err = s.locker.WithScheduleLock(ctx, in.PractitionerID, in.StartsAt, func(ctx context.Context) error {
		return s.repo.RunInTransaction(ctx, func(repo Repository) error {
			for _, occ := range occurrences {
				_, err := repo.GetAppointmentAt(ctx, in.PatientID, in.PractitionerID, occ)
				if err == nil {
					res.Skipped++
					continue
				}
				if !errors.Is(err, ErrAppointmentNotFound) {
					return err
				}

				appt := &Appointment{
					ID:              uuid.New(),
					PatientID:       in.PatientID,
					PractitionerID:  in.PractitionerID,
					StartsAt:        occ,
					Status:          StatusScheduled,
					PriceCents:      in.PriceCents,
					DurationMinutes: in.DurationMinutes,
					Notes:           in.Notes,
				}
				if err := repo.CreateAppointment(ctx, appt); err != nil {
					return err
				}
				res.Created++
			}
			return nil
		})
	})
	if err != nil {
		return BatchResult{}, err
	}

	s.log.Info().
		Str("patient_id", in.PatientID.String()).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Msg("recurring appointments scheduled")
	return res, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetAppointmentByID(ctx, id)
}

func (s *AppointmentService) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Appointment, error) {
	return s.repo.ListAppointmentsByPractitioner(ctx, practitionerID)
}

// ChangeStatus moves an appointment through the same status machine the
// agenda uses.
func (s *AppointmentService) ChangeStatus(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, to)
	}
	return s.repo.UpdateAppointmentStatus(ctx, id, to)
}
