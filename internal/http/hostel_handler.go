package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel-system/internal/domain/hostel"
	"hostel-system/internal/platform/apperr"
)

type hostelRequest struct {
	Name       string   `json:"name"`
	WardenID   *string  `json:"warden_id"`
	Capacity   int      `json:"capacity"`
	Occupied   int      `json:"occupied"`
	Facilities []string `json:"facilities"`
}

func (h *Handler) handleListHostels(w http.ResponseWriter, r *http.Request) {
	hostels, err := h.hostelSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hostels)
}

func (h *Handler) handleGetHostel(w http.ResponseWriter, r *http.Request) {
	hs, err := h.hostelSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (h *Handler) handleCreateHostel(w http.ResponseWriter, r *http.Request) {
	var req hostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	hs, err := h.hostelSvc.Create(r.Context(), &hostel.Hostel{
		Name:       req.Name,
		WardenID:   req.WardenID,
		Capacity:   req.Capacity,
		Occupied:   req.Occupied,
		Facilities: req.Facilities,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hs)
}

func (h *Handler) handleUpdateHostel(w http.ResponseWriter, r *http.Request) {
	var req hostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	hs := &hostel.Hostel{
		ID:         chi.URLParam(r, "id"),
		Name:       req.Name,
		WardenID:   req.WardenID,
		Capacity:   req.Capacity,
		Occupied:   req.Occupied,
		Facilities: req.Facilities,
	}
	if err := h.hostelSvc.Update(r.Context(), hs); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (h *Handler) handleDeleteHostel(w http.ResponseWriter, r *http.Request) {
	if err := h.hostelSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
