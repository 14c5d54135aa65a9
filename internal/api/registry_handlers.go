package api

import (
	"encoding/json"
	"net/http"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
)

func createPractitionerHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePractitionerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Name == "" || req.Email == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "name and email are required")
			return
		}

		p, err := svc.CreatePractitioner(r.Context(), clinic.PractitionerInput{
			Name:      req.Name,
			Email:     req.Email,
			Specialty: req.Specialty,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPractitionerResponse(p))
	}
}

func getPractitionerHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		p, err := svc.GetPractitioner(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPractitionerResponse(p))
	}
}

func createPatientHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req CreatePatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.FullName == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "full_name is required")
			return
		}

		in := clinic.PatientInput{
			PractitionerID: practitionerID,
			FullName:       req.FullName,
			Phone:          req.Phone,
			Email:          req.Email,
			Notes:          req.Notes,
		}
		if req.BirthDate != nil {
			bd, err := calendar.ParseDate(*req.BirthDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_birth_date", err.Error())
				return
			}
			in.BirthDate = &bd
		}

		p, err := svc.CreatePatient(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func getPatientHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
			return
		}
		p, err := svc.GetPatient(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func listPatientsHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		patients, err := svc.ListPatients(r.Context(), practitionerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			resp = append(resp, toPatientResponse(&patients[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createPostHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.Title == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "title is required")
			return
		}

		p, err := svc.CreatePost(r.Context(), clinic.PostInput{
			AuthorID:  authorID,
			Title:     req.Title,
			Content:   req.Content,
			MediaPath: req.MediaPath,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func listPostsHandler(svc *clinic.RegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		posts, err := svc.ListPosts(r.Context(), authorID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]PostResponse, 0, len(posts))
		for i := range posts {
			resp = append(resp, toPostResponse(&posts[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
