package api

import (
	"database/sql"
	"errors"
	"net/http"

	"hostel-system/internal/domain/hostel"
	"hostel-system/internal/domain/issue"
	"hostel-system/internal/domain/poll"
	"hostel-system/internal/domain/user"
	"hostel-system/internal/domain/vote"
	"hostel-system/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("inactive_user", "user is inactive", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.BadRequest("email_taken", "email already taken", err)
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.BadRequest("invalid_role", "invalid role", err)
	case errors.Is(err, user.ErrUserNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	case errors.Is(err, poll.ErrPollNotFound), errors.Is(err, vote.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrTitleRequired):
		return apperr.BadRequest("invalid_input", "poll title required", err)
	case errors.Is(err, poll.ErrInvalidOptions):
		return apperr.BadRequest("invalid_options", "poll must have 2 to 6 non-empty options", err)
	case errors.Is(err, poll.ErrInvalidEndDate):
		return apperr.BadRequest("invalid_end_date", "poll end date must be in the future", err)
	case errors.Is(err, poll.ErrHostelRequired):
		return apperr.BadRequest("hostel_required", "poll creator must belong to a hostel", err)
	case errors.Is(err, poll.ErrNotPollOwner):
		return apperr.Forbidden("not_poll_owner", "only the poll creator or an admin may do this", err)
	case errors.Is(err, vote.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", "user already voted in this poll", err)
	case errors.Is(err, vote.ErrPollClosed):
		return apperr.BadRequest("poll_closed", "poll is closed", err)
	case errors.Is(err, vote.ErrInvalidOption):
		return apperr.BadRequest("invalid_option", "option index out of range", err)
	case errors.Is(err, issue.ErrIssueNotFound):
		return apperr.NotFound("issue_not_found", "issue not found", err)
	case errors.Is(err, issue.ErrInvalidCategory):
		return apperr.BadRequest("invalid_category", "invalid issue category", err)
	case errors.Is(err, issue.ErrInvalidPriority):
		return apperr.BadRequest("invalid_priority", "invalid issue priority", err)
	case errors.Is(err, issue.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", "invalid issue status", err)
	case errors.Is(err, issue.ErrHostelRequired):
		return apperr.BadRequest("hostel_required", "reporter must belong to a hostel", err)
	case errors.Is(err, hostel.ErrHostelNotFound):
		return apperr.NotFound("hostel_not_found", "hostel not found", err)
	case errors.Is(err, hostel.ErrNameTaken):
		return apperr.BadRequest("hostel_name_taken", "hostel name already taken", err)
	case errors.Is(err, hostel.ErrNameRequired), errors.Is(err, hostel.ErrBadCapacity):
		return apperr.BadRequest("invalid_input", err.Error(), err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
