package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hostel-system/internal/domain/notification"
	"hostel-system/internal/domain/poll"
	"hostel-system/internal/platform/apperr"
	"hostel-system/internal/worker"
)

type createPollRequest struct {
	Question    string   `json:"question"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	EndsAt      string   `json:"ends_at"`
	HostelID    *string  `json:"hostel_id"`
}

func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_end_date", "ends_at must be RFC3339", err))
		return
	}

	p, err := h.pollSvc.Create(r.Context(), userIDFromCtx(r), roleFromCtx(r), hostelIDFromCtx(r), poll.CreateInput{
		Title:       req.Question,
		Description: req.Description,
		Options:     req.Options,
		EndsAt:      endsAt,
		HostelID:    req.HostelID,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emit(worker.Event{
		Audience: worker.HostelStudents,
		HostelID: p.HostelID,
		ActorID:  p.CreatorID,
		Title:    "New Poll Created",
		Message:  fmt.Sprintf("New poll: %s", p.Title),
		Type:     notification.TypePoll,
		Link:     "/student/polls",
	})

	writeJSON(w, http.StatusCreated, map[string]any{"poll": p})
}

func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	views, err := h.pollSvc.List(r.Context(), roleFromCtx(r), hostelIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// @Summary     Get one poll with tallies and voter lists
// @Tags        polls
// @Security    BearerAuth
// @Produce     json
// @Param       id   path     string  true  "Poll ID"
// @Success     200  {object} poll.View
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	view, err := h.pollSvc.Get(r.Context(), pollIDParam(r), true)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.pollSvc.Close(r.Context(), pollIDParam(r), userIDFromCtx(r), roleFromCtx(r)); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.pollSvc.Delete(r.Context(), pollIDParam(r), userIDFromCtx(r), roleFromCtx(r)); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
