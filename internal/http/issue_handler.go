package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel-system/internal/domain/issue"
	"hostel-system/internal/domain/notification"
	"hostel-system/internal/platform/apperr"
	"hostel-system/internal/worker"
)

type createIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

type updateIssueStatusRequest struct {
	Status     string  `json:"status"`
	AssignedTo *string `json:"assigned_to"`
}

func (h *Handler) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var req createIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	i, err := h.issueSvc.Create(r.Context(), userIDFromCtx(r), hostelIDFromCtx(r), issue.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emit(worker.Event{
		Audience: worker.HostelStaff,
		HostelID: &i.HostelID,
		ActorID:  i.StudentID,
		Title:    "New Issue Reported",
		Message:  fmt.Sprintf("%s (%s, %s priority)", i.Title, i.Category, i.Priority),
		Type:     notification.TypeIssue,
		Link:     "/warden/issues",
	})

	writeJSON(w, http.StatusCreated, i)
}

func (h *Handler) handleListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.issueSvc.ListForViewer(r.Context(), userIDFromCtx(r), roleFromCtx(r), hostelIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *Handler) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	i, err := h.issueSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, i)
}

func (h *Handler) handleUpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	var req updateIssueStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	i, err := h.issueSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.AssignedTo)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emit(worker.Event{
		Audience: worker.SingleUser,
		TargetID: i.StudentID,
		Title:    "Issue Status Updated",
		Message:  fmt.Sprintf("Your issue %q is now %s", i.Title, i.Status),
		Type:     notification.TypeIssue,
		Link:     "/student/issues",
	})

	writeJSON(w, http.StatusOK, i)
}
