package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

// fakeLocker runs the critical section without any distributed lock.
type fakeLocker struct{}

func (fakeLocker) WithScheduleLock(ctx context.Context, practitionerID uuid.UUID, startsAt time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testLog = zerolog.Nop()

func mustClock(t *testing.T, s string) time.Time {
	t.Helper()
	c, err := calendar.ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return c
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func seedPractitioner(repo *fakeRepo) uuid.UUID {
	id := uuid.New()
	repo.practitioners[id] = Practitioner{ID: id, Name: "Dra. Helena Prado", Email: "helena@example.com"}
	return id
}

func seedPatient(repo *fakeRepo, practitionerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	repo.patients[id] = Patient{ID: id, PractitionerID: practitionerID, FullName: "João Ferreira"}
	return id
}
