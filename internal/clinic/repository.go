package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAgendaEntryNotFound  = errors.New("agenda entry not found")
	ErrNoteNotFound         = errors.New("clinical note not found")
)

// Repository contains all DB interactions needed by the services.
// RunInTransaction hands the callback a repository bound to one
// transaction; batch creation and cascade deletion run through it.
type Repository interface {
	RunInTransaction(ctx context.Context, fn func(Repository) error) error

	// Practitioners
	CreatePractitioner(ctx context.Context, p *Practitioner) error
	GetPractitionerByID(ctx context.Context, id uuid.UUID) (*Practitioner, error)
	DeletePractitioner(ctx context.Context, id uuid.UUID) error

	// Patients
	CreatePatient(ctx context.Context, p *Patient) error
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Patient, error)
	CountPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	ReassignPatients(ctx context.Context, fromPractitioner, toPractitioner uuid.UUID) (int, error)
	DeletePatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error

	// Clinical notes
	CreateNote(ctx context.Context, n *ClinicalNote) error
	GetNoteByID(ctx context.Context, id uuid.UUID) (*ClinicalNote, error)
	ListNotesByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalNote, error)
	CountNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	DeleteNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) error

	// Slots. CreateSlot reports false, without error, when a slot with
	// the same (practitioner, date, start time) already exists.
	CreateSlot(ctx context.Context, s *Slot) (bool, error)
	GetSlotByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	GetSlotByKey(ctx context.Context, practitionerID uuid.UUID, date, startTime time.Time) (*Slot, error)
	ListFreeSlots(ctx context.Context, practitionerID uuid.UUID) ([]Slot, error)
	ListFreeSlotsByDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]Slot, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, upd SlotUpdate) (*Slot, error)
	MarkSlotBooked(ctx context.Context, id uuid.UUID) (*Slot, error)
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	CountSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	DeleteSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error

	// Appointments
	CreateAppointment(ctx context.Context, a *Appointment) error
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetAppointmentAt(ctx context.Context, patientID, practitionerID uuid.UUID, startsAt time.Time) (*Appointment, error)
	ListAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error)
	CountAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	DeleteAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error

	// Agenda entries
	CreateAgendaEntry(ctx context.Context, e *AgendaEntry) error
	GetAgendaEntryByID(ctx context.Context, id uuid.UUID) (*AgendaEntry, error)
	ListAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]AgendaEntry, error)
	ListAgendaByGroup(ctx context.Context, groupID uuid.UUID) ([]AgendaEntry, error)
	// ActiveAgendaEntryAt finds a scheduled or confirmed entry at the
	// exact instant, optionally excluding one entry (edits). Returns
	// ErrAgendaEntryNotFound when the instant is free.
	ActiveAgendaEntryAt(ctx context.Context, practitionerID uuid.UUID, at time.Time, exclude *uuid.UUID) (*AgendaEntry, error)
	UpdateAgendaEntry(ctx context.Context, id uuid.UUID, upd AgendaUpdate) (*AgendaEntry, error)
	UpdateAgendaStatus(ctx context.Context, id uuid.UUID, status Status) (*AgendaEntry, error)
	DeleteAgendaEntry(ctx context.Context, id uuid.UUID) error
	DeleteAgendaByGroup(ctx context.Context, practitionerID, groupID uuid.UUID) (int, error)
	CountAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error)
	DeleteAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) error

	// Posts
	CreatePost(ctx context.Context, p *Post) error
	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	DeletePostsByAuthor(ctx context.Context, authorID uuid.UUID) error
}
