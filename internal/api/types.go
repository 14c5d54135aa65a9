package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
)

// Requests. Dates travel as yyyy-mm-dd, times of day as HH:MM and
// instants as RFC 3339.

type CreatePractitionerRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Specialty *string `json:"specialty,omitempty"`
}

type CreatePatientRequest struct {
	FullName  string  `json:"full_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type CreatePostRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	MediaPath *string `json:"media_path,omitempty"`
}

// CreateSlotRequest accepts the price either as integer centavos or as
// a decimal string ("180.00"); price wins when both are present.
type CreateSlotRequest struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	SessionType *string `json:"session_type,omitempty"`
	Price       *string `json:"price,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

type CreateScheduleRequest struct {
	BaseDate        string   `json:"base_date"`
	Weeks           int      `json:"weeks"`
	Times           []string `json:"times"`
	DurationMinutes int      `json:"duration_minutes"`
	SessionType     *string  `json:"session_type,omitempty"`
	PriceCents      *int64   `json:"price_cents,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type UpdateSlotRequest struct {
	EndTime     *string `json:"end_time,omitempty"`
	SessionType *string `json:"session_type,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type BookSlotRequest struct {
	PatientID string `json:"patient_id"`
}

type CreateAppointmentRequest struct {
	PatientID       string  `json:"patient_id"`
	PractitionerID  string  `json:"practitioner_id"`
	StartsAt        string  `json:"starts_at"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Frequency       *string `json:"frequency,omitempty"`
	Span            *string `json:"span,omitempty"`
}

type CreateAgendaEntryRequest struct {
	PatientID      string  `json:"patient_id"`
	PractitionerID string  `json:"practitioner_id"`
	StartsAt       string  `json:"starts_at"`
	Engagements    string  `json:"engagements,omitempty"`
	Location       string  `json:"location,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Frequency      *string `json:"frequency,omitempty"`
	Span           *string `json:"span,omitempty"`
}

type UpdateAgendaEntryRequest struct {
	PatientID   *string `json:"patient_id,omitempty"`
	StartsAt    *string `json:"starts_at,omitempty"`
	Engagements *string `json:"engagements,omitempty"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type CreateNoteRequest struct {
	SessionAt       string  `json:"session_at"`
	Content         string  `json:"content"`
	SessionType     *string `json:"session_type,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
}

type DeleteAccountRequest struct {
	Confirmation string `json:"confirmation"`
}

type TransferPatientsRequest struct {
	ToPractitionerID string `json:"to_practitioner_id"`
}

// Responses.

type PractitionerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty *string   `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	FullName       string    `json:"full_name"`
	BirthDate      *string   `json:"birth_date,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaPath *string   `json:"media_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SlotResponse struct {
	ID             uuid.UUID `json:"id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	SessionType    *string   `json:"session_type,omitempty"`
	PriceCents     *int64    `json:"price_cents,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Booked         bool      `json:"booked"`
	Created        *bool     `json:"created,omitempty"`
}

type ScheduleResponse struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PractitionerID  uuid.UUID `json:"practitioner_id"`
	StartsAt        time.Time `json:"starts_at"`
	Status          string    `json:"status"`
	PriceCents      *int64    `json:"price_cents,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

type AgendaEntryResponse struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PractitionerID uuid.UUID  `json:"practitioner_id"`
	StartsAt       time.Time  `json:"starts_at"`
	Engagements    string     `json:"engagements,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	Recurring      bool       `json:"recurring"`
	Frequency      *string    `json:"frequency,omitempty"`
	Span           *string    `json:"span,omitempty"`
	GroupID        *uuid.UUID `json:"group_id,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
}

type SeriesResponse struct {
	GroupID uuid.UUID             `json:"group_id"`
	Entries []AgendaEntryResponse `json:"entries"`
}

type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

type TransferResponse struct {
	Transferred int `json:"transferred"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toPractitionerResponse(p *clinic.Practitioner) PractitionerResponse {
	return PractitionerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Specialty: p.Specialty,
		CreatedAt: p.CreatedAt,
	}
}

func toPatientResponse(p *clinic.Patient) PatientResponse {
	resp := PatientResponse{
		ID:             p.ID,
		PractitionerID: p.PractitionerID,
		FullName:       p.FullName,
		Phone:          p.Phone,
		Email:          p.Email,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
	if p.BirthDate != nil {
		bd := calendar.ISODate(*p.BirthDate)
		age := calendar.Age(*p.BirthDate, time.Now())
		resp.BirthDate = &bd
		resp.Age = &age
	}
	return resp
}

func toPostResponse(p *clinic.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		MediaPath: p.MediaPath,
		CreatedAt: p.CreatedAt,
	}
}

func toSlotResponse(s *clinic.Slot) SlotResponse {
	return SlotResponse{
		ID:             s.ID,
		PractitionerID: s.PractitionerID,
		Date:           calendar.ISODate(s.Date),
		StartTime:      s.StartTime.Format("15:04"),
		EndTime:        s.EndTime.Format("15:04"),
		SessionType:    s.SessionType,
		PriceCents:     s.PriceCents,
		Notes:          s.Notes,
		Booked:         s.Booked,
	}
}

func toAppointmentResponse(a *clinic.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		PractitionerID:  a.PractitionerID,
		StartsAt:        a.StartsAt,
		Status:          string(a.Status),
		PriceCents:      a.PriceCents,
		DurationMinutes: a.DurationMinutes,
		Notes:           a.Notes,
	}
}

func toAgendaEntryResponse(e *clinic.AgendaEntry) AgendaEntryResponse {
	resp := AgendaEntryResponse{
		ID:             e.ID,
		PatientID:      e.PatientID,
		PractitionerID: e.PractitionerID,
		StartsAt:       e.StartsAt,
		Engagements:    e.Engagements,
		Location:       e.Location,
		Notes:          e.Notes,
		Status:         string(e.Status),
		Recurring:      e.Recurring,
		GroupID:        e.GroupID,
		ParentID:       e.ParentID,
	}
	if e.Frequency != nil {
		f := string(*e.Frequency)
		resp.Frequency = &f
	}
	if e.Span != nil {
		sp := string(*e.Span)
		resp.Span = &sp
	}
	return resp
}
