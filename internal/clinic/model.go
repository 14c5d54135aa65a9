package clinic

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

// Status of an agenda entry or booking appointment. Transitions are
// enforced by the services: scheduled -> {confirmed, cancelled},
// confirmed -> {cancelled, completed}; cancelled and completed are
// terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the status machine.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusScheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}

type Practitioner struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Specialty *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patient is owned by exactly one practitioner; clinical notes hang off
// the patient. This ownership chain is what cascade deletion walks.
type Patient struct {
	ID             uuid.UUID
	PractitionerID uuid.UUID
	FullName       string
	BirthDate      *time.Time
	Phone          *string
	Email          *string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClinicalNote holds one session record. The body is stored only as
// Fernet ciphertext; plaintext exists solely in transit through the
// notes service.
type ClinicalNote struct {
	ID              uuid.UUID
	PatientID       uuid.UUID
	SessionAt       time.Time
	Ciphertext      []byte
	SessionType     *string
	DurationMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Slot is a discrete bookable window. At most one slot exists per
// (practitioner, date, start time); Booked flips to true exactly once.
type Slot struct {
	ID             uuid.UUID
	PractitionerID uuid.UUID
	Date           time.Time // date component only
	StartTime      time.Time // wall clock, date part ignored
	EndTime        time.Time
	SessionType    *string
	PriceCents     *int64
	Notes          string
	Booked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StartsAt is the slot's absolute start instant.
func (s Slot) StartsAt() time.Time {
	return calendar.CombineDateTime(s.Date, s.StartTime)
}

// Appointment is a confirmed or pending session created when a client
// books a slot, or directly by the practitioner.
type Appointment struct {
	ID              uuid.UUID
	PatientID       uuid.UUID
	PractitionerID  uuid.UUID
	StartsAt        time.Time
	Status          Status
	PriceCents      *int64
	DurationMinutes *int
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AgendaEntry is the richer dashboard scheduling record with explicit
// recurrence grouping. All entries generated from one recurring request
// share GroupID; the first entry is the anchor (ParentID nil), the rest
// point at it.
type AgendaEntry struct {
	ID             uuid.UUID
	PatientID      uuid.UUID
	PractitionerID uuid.UUID
	StartsAt       time.Time
	Engagements    string
	Location       string
	Notes          string
	Status         Status
	Recurring      bool
	Frequency      *calendar.Frequency
	Span           *calendar.Span
	GroupID        *uuid.UUID
	ParentID       *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Post is a blog entry authored by a practitioner. Its media artifact
// lives outside the database and is removed best-effort on cascade.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	Content   string
	MediaPath *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImpactSummary is the read-only phase-one result of practitioner
// deletion. Appointments counts booking appointments and agenda entries
// together, since both are practitioner-owned session rows.
type ImpactSummary struct {
	Patients      int `json:"patients"`
	ClinicalNotes int `json:"notes"`
	Appointments  int `json:"appointments"`
	Slots         int `json:"slots"`
	Posts         int `json:"posts"`
}

// SlotUpdate enumerates the mutable slot fields. Nil means unchanged;
// ownership key, date and start time are deliberately not here.
type SlotUpdate struct {
	EndTime     *time.Time
	SessionType *string
	PriceCents  *int64
	Notes       *string
}

// AgendaUpdate enumerates the mutable agenda fields.
type AgendaUpdate struct {
	PatientID   *uuid.UUID
	StartsAt    *time.Time
	Engagements *string
	Location    *string
	Notes       *string
}
