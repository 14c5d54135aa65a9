package api

import (
	"encoding/json"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
)

// createAppointmentHandler serves both single and recurring creation:
// a request carrying frequency and span becomes a recurring batch.
func createAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patientID, err := parseUUIDField(req.PatientID, "patient_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
			return
		}
		practitionerID, err := parseUUIDField(req.PractitionerID, "practitioner_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		startsAt, err := parseInstant(req.StartsAt, "starts_at")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_starts_at", err.Error())
			return
		}

		in := clinic.AppointmentInput{
			PatientID:       patientID,
			PractitionerID:  practitionerID,
			StartsAt:        startsAt,
			PriceCents:      req.PriceCents,
			DurationMinutes: req.DurationMinutes,
			Notes:           req.Notes,
		}

		if req.Frequency == nil && req.Span == nil {
			appt, err := svc.Schedule(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
			return
		}

		if req.Frequency == nil || req.Span == nil {
			writeError(w, http.StatusBadRequest, "invalid_recurrence", "frequency and span must be provided together")
			return
		}
		freq, err := calendar.ParseFrequency(*req.Frequency)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		span, err := calendar.ParseSpan(*req.Span)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		res, err := svc.ScheduleRecurring(r.Context(), in, freq, span)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func getAppointmentHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", err.Error())
			return
		}
		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		appts, err := svc.ListByPractitioner(r.Context(), practitionerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func changeAppointmentStatusHandler(svc *clinic.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", err.Error())
			return
		}

		var req ChangeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.ChangeStatus(r.Context(), id, clinic.Status(req.Status))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}
