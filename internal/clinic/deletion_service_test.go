package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// recordingMediaStore captures Remove calls instead of touching disk.
type recordingMediaStore struct {
	removed []string
	err     error
}

func (s *recordingMediaStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return s.err
}

// seedAccount populates one practitioner with the fixture the plan
// tests expect: 2 patients, 3 notes, 3 appointments + 2 agenda
// entries, 4 slots, 1 post.
func seedAccount(t *testing.T, repo *fakeRepo) uuid.UUID {
	t.Helper()
	practitionerID := seedPractitioner(repo)

	p1 := seedPatient(repo, practitionerID)
	p2 := seedPatient(repo, practitionerID)

	for i, pid := range []uuid.UUID{p1, p1, p2} {
		id := uuid.New()
		repo.notes[id] = ClinicalNote{
			ID:        id,
			PatientID: pid,
			SessionAt: time.Date(2025, time.February, 1+i, 10, 0, 0, 0, time.UTC),
		}
	}

	for i := 0; i < 3; i++ {
		id := uuid.New()
		repo.appointments[id] = Appointment{
			ID:             id,
			PatientID:      p1,
			PractitionerID: practitionerID,
			StartsAt:       time.Date(2025, time.March, 1+i, 10, 0, 0, 0, time.UTC),
			Status:         StatusScheduled,
		}
	}
	for i := 0; i < 2; i++ {
		id := uuid.New()
		repo.agenda[id] = AgendaEntry{
			ID:             id,
			PatientID:      p2,
			PractitionerID: practitionerID,
			StartsAt:       time.Date(2025, time.April, 1+i, 10, 0, 0, 0, time.UTC),
			Status:         StatusScheduled,
		}
	}

	for i := 0; i < 4; i++ {
		id := uuid.New()
		repo.slots[id] = Slot{
			ID:             id,
			PractitionerID: practitionerID,
			Date:           time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			StartTime:      time.Date(0, 1, 1, 9+i, 0, 0, 0, time.UTC),
			EndTime:        time.Date(0, 1, 1, 9+i, 50, 0, 0, time.UTC),
		}
	}

	postID := uuid.New()
	mediaPath := "covers/ansiedade.jpg"
	repo.posts[postID] = Post{
		ID:        postID,
		AuthorID:  practitionerID,
		Title:     "Lidando com a ansiedade",
		MediaPath: &mediaPath,
	}

	return practitionerID
}

func TestPlanDeletionCounts(t *testing.T) {
	repo := newFakeRepo()
	media := &recordingMediaStore{}
	svc := NewDeletionService(repo, media, testLog)
	practitionerID := seedAccount(t, repo)

	summary, err := svc.PlanDeletion(context.Background(), practitionerID)
	if err != nil {
		t.Fatalf("PlanDeletion: %v", err)
	}

	want := ImpactSummary{Patients: 2, ClinicalNotes: 3, Appointments: 5, Slots: 4, Posts: 1}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}

	// Planning must not delete anything.
	if len(repo.patients) != 2 || len(repo.posts) != 1 {
		t.Error("plan phase mutated the store")
	}
	if len(media.removed) != 0 {
		t.Error("plan phase removed media")
	}
}

func TestExecuteDeletionRequiresPhrase(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDeletionService(repo, &recordingMediaStore{}, testLog)
	practitionerID := seedAccount(t, repo)
	ctx := context.Background()

	for _, phrase := range []string{"", "EXCLUIR", "DELETE EVERYTHING", "EXCLUIRTUDO"} {
		if _, err := svc.ExecuteDeletion(ctx, practitionerID, phrase); !errors.Is(err, ErrConfirmationMismatch) {
			t.Errorf("phrase %q: got %v, want ErrConfirmationMismatch", phrase, err)
		}
	}
	if len(repo.practitioners) != 1 {
		t.Error("refused deletion still removed the practitioner")
	}
}

func TestExecuteDeletionCascades(t *testing.T) {
	repo := newFakeRepo()
	media := &recordingMediaStore{}
	svc := NewDeletionService(repo, media, testLog)
	practitionerID := seedAccount(t, repo)

	// Another practitioner's data must survive the cascade.
	bystander := seedAccount(t, repo)

	// Case and surrounding space are forgiven.
	summary, err := svc.ExecuteDeletion(context.Background(), practitionerID, "  excluir tudo ")
	if err != nil {
		t.Fatalf("ExecuteDeletion: %v", err)
	}

	want := ImpactSummary{Patients: 2, ClinicalNotes: 3, Appointments: 5, Slots: 4, Posts: 1}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}

	if _, ok := repo.practitioners[practitionerID]; ok {
		t.Error("practitioner still present")
	}
	if _, ok := repo.practitioners[bystander]; !ok {
		t.Error("cascade removed another practitioner")
	}
	if len(repo.patients) != 2 || len(repo.notes) != 3 || len(repo.appointments) != 3 ||
		len(repo.agenda) != 2 || len(repo.slots) != 4 || len(repo.posts) != 1 {
		t.Errorf("bystander data damaged: %d patients %d notes %d appts %d agenda %d slots %d posts",
			len(repo.patients), len(repo.notes), len(repo.appointments), len(repo.agenda), len(repo.slots), len(repo.posts))
	}

	if len(media.removed) != 1 || media.removed[0] != "covers/ansiedade.jpg" {
		t.Errorf("media removed = %v, want the post cover", media.removed)
	}
}

// A failure partway through must leave the account fully intact, and
// must not touch media files.
func TestExecuteDeletionRollsBack(t *testing.T) {
	repo := newFakeRepo()
	media := &recordingMediaStore{}
	svc := NewDeletionService(repo, media, testLog)
	practitionerID := seedAccount(t, repo)

	boom := errors.New("disk full")
	repo.failOn["DeletePostsByAuthor"] = boom

	_, err := svc.ExecuteDeletion(context.Background(), practitionerID, "EXCLUIR TUDO")
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want injected error", err)
	}

	if len(repo.practitioners) != 1 || len(repo.patients) != 2 || len(repo.notes) != 3 ||
		len(repo.appointments) != 3 || len(repo.agenda) != 2 || len(repo.slots) != 4 || len(repo.posts) != 1 {
		t.Error("rollback left the account partially deleted")
	}
	if len(media.removed) != 0 {
		t.Errorf("media removed despite rollback: %v", media.removed)
	}
}

func TestExecuteDeletionMediaFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	media := &recordingMediaStore{err: errors.New("permission denied")}
	svc := NewDeletionService(repo, media, testLog)
	practitionerID := seedAccount(t, repo)

	if _, err := svc.ExecuteDeletion(context.Background(), practitionerID, "EXCLUIR TUDO"); err != nil {
		t.Fatalf("media failure escalated: %v", err)
	}
	if _, ok := repo.practitioners[practitionerID]; ok {
		t.Error("practitioner still present")
	}
}

func TestTransferPatients(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDeletionService(repo, &recordingMediaStore{}, testLog)
	fromID := seedPractitioner(repo)
	toID := seedPractitioner(repo)
	seedPatient(repo, fromID)
	seedPatient(repo, fromID)
	ctx := context.Background()

	moved, err := svc.TransferPatients(ctx, fromID, toID)
	if err != nil {
		t.Fatalf("TransferPatients: %v", err)
	}
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}
	for _, p := range repo.patients {
		if p.PractitionerID != toID {
			t.Errorf("patient %s not reassigned", p.ID)
		}
	}

	// The roster is now empty, so a second transfer refuses.
	if _, err := svc.TransferPatients(ctx, fromID, toID); !errors.Is(err, ErrNoPatients) {
		t.Errorf("got %v, want ErrNoPatients", err)
	}
}

func TestTransferPatientsValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDeletionService(repo, &recordingMediaStore{}, testLog)
	fromID := seedPractitioner(repo)
	seedPatient(repo, fromID)
	ctx := context.Background()

	if _, err := svc.TransferPatients(ctx, fromID, fromID); !errors.Is(err, ErrSamePractitioner) {
		t.Errorf("got %v, want ErrSamePractitioner", err)
	}
	if _, err := svc.TransferPatients(ctx, fromID, uuid.New()); !errors.Is(err, ErrPractitionerNotFound) {
		t.Errorf("got %v, want ErrPractitionerNotFound", err)
	}
}
