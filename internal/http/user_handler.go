package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel-system/internal/domain/user"
	"hostel-system/internal/platform/apperr"
)

type updateRoleRequest struct {
	Role string `json:"role"`
}

type updateProfileRequest struct {
	Name               *string `json:"name"`
	RoomNumber         *string `json:"room_number"`
	Phone              *string `json:"phone"`
	EmailNotifications *bool   `json:"email_notifications"`
}

// @Summary     List users
// @Tags        users
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   user.User
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary     Update user role
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Param       id       path     string             true  "User ID"
// @Param       request  body     updateRoleRequest  true  "New role"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid body or role"
// @Failure     404      {object}  map[string]string  "not found"
// @Router      /api/v1/users/{id}/role [patch]
func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.userSvc.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userSvc.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.UpdateProfile(r.Context(), userIDFromCtx(r), user.ProfileUpdate{
		Name:               req.Name,
		RoomNumber:         req.RoomNumber,
		Phone:              req.Phone,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
