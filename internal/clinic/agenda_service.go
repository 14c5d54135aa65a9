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
	ErrScheduleConflict  = errors.New("practitioner already has an entry at this time")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("unknown status")
)

// AgendaService manages the practitioner's dashboard agenda: rich
// entries with recurrence grouping and a status lifecycle. Two entries
// of one practitioner may never share a start instant while both are
// active (scheduled or confirmed); cancelled and completed entries
// release their window.
type AgendaService struct {
	repo   Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewAgendaService(repo Repository, locker redisclient.Locker, log zerolog.Logger) *AgendaService {
	return &AgendaService{repo: repo, locker: locker, log: log}
}

type AgendaEntryInput struct {
	PatientID      uuid.UUID
	PractitionerID uuid.UUID
	StartsAt       time.Time
	Engagements    string
	Location       string
	Notes          string
}

// instantFree returns nil when no active entry occupies the instant.
func instantFree(ctx context.Context, repo Repository, practitionerID uuid.UUID, at time.Time, exclude *uuid.UUID) error {
	_, err := repo.ActiveAgendaEntryAt(ctx, practitionerID, at, exclude)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrScheduleConflict, at.Format(time.RFC3339))
	}
	if errors.Is(err, ErrAgendaEntryNotFound) {
		return nil
	}
	return err
}

// CreateEntry adds a single agenda entry after checking the window is
// free.
func (s *AgendaService) CreateEntry(ctx context.Context, in AgendaEntryInput) (*AgendaEntry, error) {
	if _, err := s.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	entry := &AgendaEntry{
		ID:             uuid.New(),
		PatientID:      in.PatientID,
		PractitionerID: in.PractitionerID,
		StartsAt:       in.StartsAt,
		Engagements:    in.Engagements,
		Location:       in.Location,
		Notes:          in.Notes,
		Status:         StatusScheduled,
	}

	err := s.locker.WithScheduleLock(ctx, in.PractitionerID, in.StartsAt, func(ctx context.Context) error {
		if err := instantFree(ctx, s.repo, in.PractitionerID, in.StartsAt, nil); err != nil {
			return err
		}
		return s.repo.CreateAgendaEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateRecurringSeries expands a recurring plan and creates every
// occurrence in one transaction. All occurrences are conflict-checked
// first; a single occupied window fails the whole series and nothing is
// written. Entries share a fresh group id, the first occurrence is the
// anchor and the rest point at it.
func (s *AgendaService) CreateRecurringSeries(ctx context.Context, in AgendaEntryInput, freq calendar.Frequency, span calendar.Span) ([]AgendaEntry, error) {
	if _, err := s.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	occurrences, err := calendar.ExpandPlan(in.StartsAt, freq, span)
	if err != nil {
		return nil, err
	}

	var entries []AgendaEntry
	err = s.locker.WithScheduleLock(ctx, in.PractitionerID, in.StartsAt, func(ctx context.Context) error {
		return s.repo.RunInTransaction(ctx, func(repo Repository) error {
			for _, occ := range occurrences {
				if err := instantFree(ctx, repo, in.PractitionerID, occ, nil); err != nil {
					return err
				}
			}

			groupID := uuid.New()
			var anchorID *uuid.UUID
			for i, occ := range occurrences {
				entry := AgendaEntry{
					ID:             uuid.New(),
					PatientID:      in.PatientID,
					PractitionerID: in.PractitionerID,
					StartsAt:       occ,
					Engagements:    in.Engagements,
					Location:       in.Location,
					Notes:          in.Notes,
					Status:         StatusScheduled,
					Recurring:      true,
					Frequency:      &freq,
					Span:           &span,
					GroupID:        &groupID,
					ParentID:       anchorID,
				}
				if err := repo.CreateAgendaEntry(ctx, &entry); err != nil {
					return err
				}
				if i == 0 {
					id := entry.ID
					anchorID = &id
				}
				entries = append(entries, entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("practitioner_id", in.PractitionerID.String()).
		Str("frequency", string(freq)).
		Str("span", string(span)).
		Int("entries", len(entries)).
		Msg("recurring series created")
	return entries, nil
}

func (s *AgendaService) GetEntry(ctx context.Context, id uuid.UUID) (*AgendaEntry, error) {
	return s.repo.GetAgendaEntryByID(ctx, id)
}

func (s *AgendaService) ListEntries(ctx context.Context, practitionerID uuid.UUID) ([]AgendaEntry, error) {
	return s.repo.ListAgendaByPractitioner(ctx, practitionerID)
}

func (s *AgendaService) ListSeries(ctx context.Context, groupID uuid.UUID) ([]AgendaEntry, error) {
	return s.repo.ListAgendaByGroup(ctx, groupID)
}

// UpdateEntry edits an entry. A changed start time is conflict-checked
// against all active entries except the one being moved.
func (s *AgendaService) UpdateEntry(ctx context.Context, id uuid.UUID, upd AgendaUpdate) (*AgendaEntry, error) {
	entry, err := s.repo.GetAgendaEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.PatientID != nil {
		if _, err := s.repo.GetPatientByID(ctx, *upd.PatientID); err != nil {
			return nil, err
		}
	}

	if upd.StartsAt == nil || upd.StartsAt.Equal(entry.StartsAt) {
		return s.repo.UpdateAgendaEntry(ctx, id, upd)
	}

	var out *AgendaEntry
	err = s.locker.WithScheduleLock(ctx, entry.PractitionerID, *upd.StartsAt, func(ctx context.Context) error {
		if err := instantFree(ctx, s.repo, entry.PractitionerID, *upd.StartsAt, &id); err != nil {
			return err
		}
		out, err = s.repo.UpdateAgendaEntry(ctx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChangeStatus moves an entry through the status machine. Terminal
// states reject every transition.
func (s *AgendaService) ChangeStatus(ctx context.Context, id uuid.UUID, to Status) (*AgendaEntry, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	entry, err := s.repo.GetAgendaEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, to)
	}
	return s.repo.UpdateAgendaStatus(ctx, id, to)
}

func (s *AgendaService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAgendaEntry(ctx, id)
}

// DeleteSeries removes every entry of a recurring group owned by the
// practitioner and reports how many were removed.
func (s *AgendaService) DeleteSeries(ctx context.Context, practitionerID, groupID uuid.UUID) (int, error) {
	var removed int
	err := s.repo.RunInTransaction(ctx, func(repo Repository) error {
		n, err := repo.DeleteAgendaByGroup(ctx, practitionerID, groupID)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if removed == 0 {
		return 0, ErrAgendaEntryNotFound
	}
	return removed, nil
}
