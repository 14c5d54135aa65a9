package clinic

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/psicare/clinic-scheduling/internal/media"
)

// ConfirmationPhrase must accompany the destructive phase of
// practitioner deletion. Matching ignores case and surrounding space.
const ConfirmationPhrase = "EXCLUIR TUDO"

var (
	ErrConfirmationMismatch = errors.New("confirmation phrase does not match")
	ErrNoPatients           = errors.New("practitioner has no patients to transfer")
	ErrSamePractitioner     = errors.New("source and target practitioner are the same")
)

// DeletionService implements the two-phase practitioner cascade and
// patient transfer. Phase one reads the impact; phase two deletes
// everything the practitioner owns in a single transaction, gated on
// the typed confirmation phrase.
type DeletionService struct {
	repo  Repository
	media media.Store
	log   zerolog.Logger
}

func NewDeletionService(repo Repository, mediaStore media.Store, log zerolog.Logger) *DeletionService {
	return &DeletionService{repo: repo, media: mediaStore, log: log}
}

func summarize(ctx context.Context, repo Repository, practitionerID uuid.UUID) (*ImpactSummary, error) {
	patients, err := repo.CountPatientsByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	notes, err := repo.CountNotesByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	appointments, err := repo.CountAppointmentsByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	agenda, err := repo.CountAgendaByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	slots, err := repo.CountSlotsByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	posts, err := repo.CountPostsByAuthor(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	return &ImpactSummary{
		Patients:      patients,
		ClinicalNotes: notes,
		Appointments:  appointments + agenda,
		Slots:         slots,
		Posts:         posts,
	}, nil
}

// PlanDeletion is the read-only first phase: it reports what a cascade
// would remove without touching anything.
func (s *DeletionService) PlanDeletion(ctx context.Context, practitionerID uuid.UUID) (*ImpactSummary, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, practitionerID); err != nil {
		return nil, err
	}
	return summarize(ctx, s.repo, practitionerID)
}

// ConfirmationMatches checks the typed phrase against ConfirmationPhrase.
func ConfirmationMatches(phrase string) bool {
	return strings.EqualFold(strings.TrimSpace(phrase), ConfirmationPhrase)
}

// ExecuteDeletion is the destructive second phase. Every row the
// practitioner owns is removed in one transaction, children before the
// rows they reference, so a failure anywhere leaves the account intact.
// Post media files are removed best-effort only after the commit; a
// rolled-back cascade never loses a file.
func (s *DeletionService) ExecuteDeletion(ctx context.Context, practitionerID uuid.UUID, confirmation string) (*ImpactSummary, error) {
	if !ConfirmationMatches(confirmation) {
		return nil, ErrConfirmationMismatch
	}
	if _, err := s.repo.GetPractitionerByID(ctx, practitionerID); err != nil {
		return nil, err
	}

	var (
		summary    *ImpactSummary
		mediaPaths []string
	)
	err := s.repo.RunInTransaction(ctx, func(repo Repository) error {
		var err error
		summary, err = summarize(ctx, repo, practitionerID)
		if err != nil {
			return err
		}

		posts, err := repo.ListPostsByAuthor(ctx, practitionerID)
		if err != nil {
			return err
		}
		for _, p := range posts {
			if p.MediaPath != nil {
				mediaPaths = append(mediaPaths, *p.MediaPath)
			}
		}

		if err := repo.DeleteNotesByPractitioner(ctx, practitionerID); err != nil {
			return err
		}
		if err := repo.DeleteAgendaByPractitioner(ctx, practitionerID); err != nil {
			return err
		}
		if err := repo.DeleteAppointmentsByPractitioner(ctx, practitionerID); err != nil {
			return err
		}
		if err := repo.DeletePatientsByPractitioner(ctx, practitionerID); err != nil {
			return err
		}
		if err := repo.DeleteSlotsByPractitioner(ctx, practitionerID); err != nil {
			return err
		}
		if err := repo.DeletePostsByAuthor(ctx, practitionerID); err != nil {
			return err
		}
		return repo.DeletePractitioner(ctx, practitionerID)
	})
	if err != nil {
		return nil, err
	}

	for _, path := range mediaPaths {
		if err := s.media.Remove(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("could not remove post media")
		}
	}

	s.log.Info().
		Str("practitioner_id", practitionerID.String()).
		Int("patients", summary.Patients).
		Int("appointments", summary.Appointments).
		Msg("practitioner account deleted")
	return summary, nil
}

// TransferPatients moves every patient of one practitioner to another.
// The transfer is atomic and refuses to run when there is nothing to
// move, so callers can tell an empty roster from a successful transfer.
func (s *DeletionService) TransferPatients(ctx context.Context, fromID, toID uuid.UUID) (int, error) {
	if fromID == toID {
		return 0, ErrSamePractitioner
	}
	if _, err := s.repo.GetPractitionerByID(ctx, fromID); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetPractitionerByID(ctx, toID); err != nil {
		return 0, err
	}

	count, err := s.repo.CountPatientsByPractitioner(ctx, fromID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNoPatients
	}

	var moved int
	err = s.repo.RunInTransaction(ctx, func(repo Repository) error {
		n, err := repo.ReassignPatients(ctx, fromID, toID)
		if err != nil {
			return err
		}
		moved = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("from", fromID.String()).
		Str("to", toID.String()).
		Int("patients", moved).
		Msg("patients transferred")
	return moved, nil
}
