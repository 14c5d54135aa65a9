package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/psicare/clinic-scheduling/internal/calendar"
	"github.com/psicare/clinic-scheduling/internal/clinic"
	"github.com/psicare/clinic-scheduling/internal/money"
)

func createSlotHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req CreateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, err := calendar.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		start, err := calendar.ParseClock(req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_time", err.Error())
			return
		}
		end, err := calendar.ParseClock(req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end_time", err.Error())
			return
		}

		priceCents := req.PriceCents
		if req.Price != nil {
			cents, err := money.ToCents(*req.Price)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_price", err.Error())
				return
			}
			priceCents = &cents
		}

		slot, created, err := svc.CreateSlot(r.Context(), clinic.CreateSlotInput{
			PractitionerID: practitionerID,
			Date:           date,
			StartTime:      start,
			EndTime:        end,
			SessionType:    req.SessionType,
			PriceCents:     priceCents,
			Notes:          req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := toSlotResponse(slot)
		resp.Created = &created
		status := http.StatusCreated
		if !created {
			status = http.StatusOK
		}
		writeJSON(w, status, resp)
	}
}

func createScheduleHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}

		var req CreateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		baseDate, err := calendar.ParseDate(req.BaseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_base_date", err.Error())
			return
		}
		times := make([]time.Time, 0, len(req.Times))
		for _, s := range req.Times {
			t, err := calendar.ParseClock(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_times", err.Error())
				return
			}
			times = append(times, t)
		}

		created, err := svc.CreateSchedule(r.Context(), clinic.CreateScheduleInput{
			PractitionerID:  practitionerID,
			BaseDate:        baseDate,
			Weeks:           req.Weeks,
			Times:           times,
			DurationMinutes: req.DurationMinutes,
			SessionType:     req.SessionType,
			PriceCents:      req.PriceCents,
			Notes:           req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		weeks := req.Weeks
		if weeks < 1 {
			weeks = 1
		}
		writeJSON(w, http.StatusCreated, ScheduleResponse{
			Requested: weeks * len(times),
			Created:   created,
		})
	}
}

func availabilityHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		days, err := svc.FreeSlots(r.Context(), practitionerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, days)
	}
}

func freeSlotsByDateHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		practitionerID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_practitioner_id", err.Error())
			return
		}
		date, err := calendar.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date query parameter must be yyyy-mm-dd")
			return
		}

		slots, err := svc.FreeSlotsByDate(r.Context(), practitionerID, date)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]SlotResponse, 0, len(slots))
		for i := range slots {
			resp = append(resp, toSlotResponse(&slots[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func updateSlotHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", err.Error())
			return
		}

		var req UpdateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		upd := clinic.SlotUpdate{
			SessionType: req.SessionType,
			PriceCents:  req.PriceCents,
			Notes:       req.Notes,
		}
		if req.EndTime != nil {
			end, err := calendar.ParseClock(*req.EndTime)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_end_time", err.Error())
				return
			}
			upd.EndTime = &end
		}

		slot, err := svc.UpdateSlot(r.Context(), id, upd)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponse(slot))
	}
}

func deleteSlotHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", err.Error())
			return
		}
		if err := svc.DeleteSlot(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func bookSlotHandler(svc *clinic.SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, err := parseUUIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", err.Error())
			return
		}

		var req BookSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		patientID, err := parseUUIDField(req.PatientID, "patient_id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", err.Error())
			return
		}

		appt, err := svc.BookSlot(r.Context(), slotID, patientID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}
