package api

import (
	"encoding/json"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
)

// createAgendaEntryHandler creates one entry, or a whole recurring
// series when frequency and span are present.
func createAgendaEntryHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAgendaEntryRequest
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

		in := clinic.AgendaEntryInput{
			PatientID:      patientID,
			PractitionerID: practitionerID,
			StartsAt:       startsAt,
			Engagements:    req.Engagements,
			Location:       req.Location,
			Notes:          req.Notes,
		}

		if req.Frequency == nil && req.Span == nil {
			entry, err := svc.CreateEntry(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toAgendaEntryResponse(entry))
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

		entries, err := svc.CreateRecurringSeries(r.Context(), in, freq, span)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := SeriesResponse{Entries: make([]AgendaEntryResponse, 0, len(entries))}
		if len(entries) > 0 && entries[0].GroupID != nil {
			resp.GroupID = *entries[0].GroupID
		}
		for i := range entries {
			resp.Entries = append(resp.Entries, toAgendaEntryResponse(&entries[i]))
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func getAgendaEntryHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_agenda_entry_id", err.Error())
			return
		}
		entry, err := svc.GetEntry(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAgendaEntryResponse(entry))
	}
}

func listAgendaHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		entries, err := svc.ListEntries(r.Context(), practitionerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AgendaEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toAgendaEntryResponse(&entries[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func updateAgendaEntryHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_agenda_entry_id", err.Error())
			return
		}

		var req UpdateAgendaEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		upd := clinic.AgendaUpdate{
			Engagements: req.Engagements,
			Location:    req.Location,
			Notes:       req.Notes,
		}
		if req.PatientID != nil {
			pid, err := parseUUIDField(*req.PatientID, "patient_id")
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
				return
			}
			upd.PatientID = &pid
		}
		if req.StartsAt != nil {
			at, err := parseInstant(*req.StartsAt, "starts_at")
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_starts_at", err.Error())
				return
			}
			upd.StartsAt = &at
		}

		entry, err := svc.UpdateEntry(r.Context(), id, upd)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAgendaEntryResponse(entry))
	}
}

func changeAgendaStatusHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_agenda_entry_id", err.Error())
			return
		}

		var req ChangeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		entry, err := svc.ChangeStatus(r.Context(), id, clinic.Status(req.Status))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAgendaEntryResponse(entry))
	}
}

func deleteAgendaEntryHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_agenda_entry_id", err.Error())
			return
		}
		if err := svc.DeleteEntry(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteAgendaSeriesHandler(svc *clinic.AgendaService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		groupID, err := parseUUIDParam(r, "groupID")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_group_id", err.Error())
			return
		}

		removed, err := svc.DeleteSeries(r.Context(), practitionerID, groupID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, DeletedResponse{Deleted: removed})
	}
}
