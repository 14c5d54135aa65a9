package api

import (
	"encoding/json"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/clinic"
)

func createNoteHandler(svc *clinic.NotesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
			return
		}

		var req CreateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Content == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "content is required")
			return
		}
		sessionAt, err := parseInstant(req.SessionAt, "session_at")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_session_at", err.Error())
			return
		}

		note, err := svc.CreateNote(r.Context(), clinic.NoteInput{
			PatientID:       patientID,
			SessionAt:       sessionAt,
			Content:         req.Content,
			SessionType:     req.SessionType,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}

func getNoteHandler(svc *clinic.NotesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_note_id", err.Error())
			return
		}
		note, err := svc.GetNote(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

func listPatientNotesHandler(svc *clinic.NotesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
			return
		}
		notes, err := svc.ListPatientNotes(r.Context(), patientID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, notes)
	}
}
