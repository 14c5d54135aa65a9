package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
	redisclient "github.com/psicare/clinic-scheduling/internal/redis"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeDomainError maps service errors onto HTTP statuses. Unknown
// errors stay opaque 500s.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrPractitionerNotFound):
		writeError(w, http.StatusNotFound, "practitioner_not_found", err.Error())
	case errors.Is(err, clinic.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, clinic.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, clinic.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, clinic.ErrAgendaEntryNotFound):
		writeError(w, http.StatusNotFound, "agenda_entry_not_found", err.Error())
	case errors.Is(err, clinic.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "note_not_found", err.Error())
	case errors.Is(err, clinic.ErrSlotBooked):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, clinic.ErrScheduleConflict):
		writeError(w, http.StatusConflict, "schedule_conflict", err.Error())
	case errors.Is(err, clinic.ErrAppointmentExists):
		writeError(w, http.StatusConflict, "appointment_exists", err.Error())
	case errors.Is(err, clinic.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "schedule_busy", "this time window is being modified, please retry shortly")
	case errors.Is(err, clinic.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, "invalid_time_range", err.Error())
	case errors.Is(err, clinic.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, calendar.ErrInvalidFrequency):
		writeError(w, http.StatusBadRequest, "invalid_frequency", err.Error())
	case errors.Is(err, calendar.ErrInvalidSpan):
		writeError(w, http.StatusBadRequest, "invalid_span", err.Error())
	case errors.Is(err, clinic.ErrConfirmationMismatch):
		writeError(w, http.StatusBadRequest, "confirmation_mismatch", err.Error())
	case errors.Is(err, clinic.ErrNoPatients):
		writeError(w, http.StatusConflict, "no_patients", err.Error())
	case errors.Is(err, clinic.ErrSamePractitioner):
		writeError(w, http.StatusBadRequest, "same_practitioner", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
