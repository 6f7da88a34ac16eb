package api

import (
	"encoding/json"
	"net/http"

	"hostel-system/internal/metrics"
	"hostel-system/internal/platform/apperr"
)

type voteRequest struct {
	OptionIndex *int `json:"option_index"`
}

// @Summary     Cast a vote
// @Tags        votes
// @Security    BearerAuth
// @Accept      json
// @Param       id       path      string       true  "Poll ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     201      {object}  vote.Vote
// @Failure     400      {object}  map[string]string  "closed poll or invalid option"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     404      {object}  map[string]string  "poll not found"
// @Failure     409      {object}  map[string]string  "already voted"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/polls/{id}/vote [post]
func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.OptionIndex == nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "option_index is required", nil))
		return
	}

	v, err := h.voteSvc.Cast(r.Context(), pollIDParam(r), userIDFromCtx(r), *req.OptionIndex)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncVoteCast()

	writeJSON(w, http.StatusCreated, v)
}
