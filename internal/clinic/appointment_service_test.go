package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

func newAppointmentService(repo *fakeRepo) *AppointmentService {
	return NewAppointmentService(repo, fakeLocker{}, testLog)
}

func TestScheduleRejectsDuplicate(t *testing.T) {
	repo := newFakeRepo()
	svc := newAppointmentService(repo)
	practitionerID := seedPractitioner(repo)
	patientID := seedPatient(repo, practitionerID)
	ctx := context.Background()

	in := AppointmentInput{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		StartsAt:       time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
	}

	if _, err := svc.Schedule(ctx, in); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if _, err := svc.Schedule(ctx, in); !errors.Is(err, ErrAppointmentExists) {
		t.Errorf("got %v, want ErrAppointmentExists", err)
	}
}

// Recurring batches skip occurrences already booked instead of failing.
func TestScheduleRecurringSkipsExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := newAppointmentService(repo)
	practitionerID := seedPractitioner(repo)
	patientID := seedPatient(repo, practitionerID)
	ctx := context.Background()

	start := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)

	// Pre-book the second and fifth weekly occurrences.
	for _, offset := range []int{7, 28} {
		_, err := svc.Schedule(ctx, AppointmentInput{
			PatientID:      patientID,
			PractitionerID: practitionerID,
			StartsAt:       start.AddDate(0, 0, offset),
		})
		if err != nil {
			t.Fatalf("Schedule: %v", err)
		}
	}

	res, err := svc.ScheduleRecurring(ctx, AppointmentInput{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		StartsAt:       start,
	}, calendar.FreqWeekly, calendar.SpanThreeMonths)
	if err != nil {
		t.Fatalf("ScheduleRecurring: %v", err)
	}

	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}
	if res.Created != 11 {
		t.Errorf("created = %d, want 11", res.Created)
	}
	if len(repo.appointments) != 13 {
		t.Errorf("store holds %d appointments, want 13", len(repo.appointments))
	}
}

func TestScheduleRecurringRollsBackOnFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := newAppointmentService(repo)
	practitionerID := seedPractitioner(repo)
	patientID := seedPatient(repo, practitionerID)
	ctx := context.Background()

	boom := errors.New("insert failed")
	repo.failOn["CreateAppointment"] = boom

	_, err := svc.ScheduleRecurring(ctx, AppointmentInput{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		StartsAt:       time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC),
	}, calendar.FreqWeekly, calendar.SpanThreeMonths)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want injected error", err)
	}
	if len(repo.appointments) != 0 {
		t.Errorf("%d appointments left after rollback", len(repo.appointments))
	}
}

func TestAppointmentStatusMachine(t *testing.T) {
	repo := newFakeRepo()
	svc := newAppointmentService(repo)
	practitionerID := seedPractitioner(repo)
	patientID := seedPatient(repo, practitionerID)
	ctx := context.Background()

	appt, err := svc.Schedule(ctx, AppointmentInput{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		StartsAt:       time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, appt.ID, StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("scheduled -> completed: got %v, want ErrInvalidTransition", err)
	}

	confirmed, err := svc.ChangeStatus(ctx, appt.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	if _, err := svc.ChangeStatus(ctx, appt.ID, StatusCompleted); err != nil {
		t.Errorf("confirmed -> completed: %v", err)
	}
}
