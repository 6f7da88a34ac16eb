package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"hostel-system/internal/domain/hostel"
	"hostel-system/internal/domain/issue"
	"hostel-system/internal/domain/notification"
	"hostel-system/internal/domain/poll"
	"hostel-system/internal/domain/user"
	"hostel-system/internal/domain/vote"
	jwtpkg "hostel-system/internal/platform/jwt"
	"hostel-system/internal/worker"
)

type Handler struct {
	userSvc   *user.Service
	pollSvc   *poll.Service
	voteSvc   *vote.Service
	issueSvc  *issue.Service
	hostelSvc *hostel.Service
	notifRepo notification.Repository
	jwtMgr    *jwtpkg.Manager
	events    chan<- worker.Event
	db        *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	pollSvc *poll.Service,
	voteSvc *vote.Service,
	issueSvc *issue.Service,
	hostelSvc *hostel.Service,
	notifRepo notification.Repository,
	jwtMgr *jwtpkg.Manager,
	events chan<- worker.Event,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:   userSvc,
		pollSvc:   pollSvc,
		voteSvc:   voteSvc,
		issueSvc:  issueSvc,
		hostelSvc: hostelSvc,
		notifRepo: notifRepo,
		jwtMgr:    jwtMgr,
		events:    events,
		db:        db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.handleSignup)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))

			r.Get("/auth/me", h.handleMe)
			r.Get("/profile", h.handleMe)
			r.Patch("/profile", h.handleUpdateProfile)

			r.Get("/polls", h.handleListPolls)
			r.Get("/polls/{id}", h.handleGetPoll)
			r.With(RequireRole(user.RoleStudent), RateLimitVotes(rate.Every(time.Minute/10), 3)).
				Post("/polls/{id}/vote", h.handleCastVote)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(user.RoleWarden, user.RoleAdmin))
				r.Post("/polls", h.handleCreatePoll)
				r.Patch("/polls/{id}/close", h.handleClosePoll)
				r.Delete("/polls/{id}", h.handleDeletePoll)
				r.Patch("/issues/{id}/status", h.handleUpdateIssueStatus)
			})

			r.Get("/issues", h.handleListIssues)
			r.Get("/issues/{id}", h.handleGetIssue)
			r.With(RequireRole(user.RoleStudent)).Post("/issues", h.handleCreateIssue)

			r.Get("/notifications", h.handleListNotifications)
			r.Patch("/notifications/{id}/read", h.handleMarkNotificationRead)
			r.Post("/notifications/read-all", h.handleMarkAllNotificationsRead)

			r.Get("/hostels", h.handleListHostels)
			r.Get("/hostels/{id}", h.handleGetHostel)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(user.RoleAdmin))
				r.Post("/hostels", h.handleCreateHostel)
				r.Patch("/hostels/{id}", h.handleUpdateHostel)
				r.Delete("/hostels/{id}", h.handleDeleteHostel)
				r.Get("/users", h.handleListUsers)
				r.Patch("/users/{id}/role", h.handleUpdateUserRole)
				r.Patch("/users/{id}/deactivate", h.handleDeactivateUser)
			})
		})
	})

	return r
}

// emit hands an event to the notifier without blocking the request. A full
// buffer drops the event; dispatch is best effort by contract.
func (h *Handler) emit(ev worker.Event) {
	select {
	case h.events <- ev:
	default:
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pollIDParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
