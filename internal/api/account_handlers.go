package api

import (
	"encoding/json"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/clinic"
)

func deletionPlanHandler(svc *clinic.DeletionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		summary, err := svc.PlanDeletion(r.Context(), practitionerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func deleteAccountHandler(svc *clinic.DeletionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req DeleteAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		summary, err := svc.ExecuteDeletion(r.Context(), practitionerID, req.Confirmation)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func transferPatientsHandler(svc *clinic.DeletionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req TransferPatientsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		toID, err := parseUUIDField(req.ToPractitionerID, "to_practitioner_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_to_practitioner_id", err.Error())
			return
		}

		moved, err := svc.TransferPatients(r.Context(), fromID, toID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TransferResponse{Transferred: moved})
	}
}
