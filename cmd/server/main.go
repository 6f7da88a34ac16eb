package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "hostel-system/docs"
	"hostel-system/internal/config"
	"hostel-system/internal/domain/hostel"
	"hostel-system/internal/domain/issue"
	"hostel-system/internal/domain/poll"
	"hostel-system/internal/domain/user"
	"hostel-system/internal/domain/vote"
	api "hostel-system/internal/http"
	"hostel-system/internal/metrics"
	"hostel-system/internal/platform/database"
	jwtpkg "hostel-system/internal/platform/jwt"
	"hostel-system/internal/repository/postgres"
	"hostel-system/internal/worker"
)

// @title           Hostel Management API
// @version         1.0
// @description     Hostel management platform with polls, issue tracking and notifications
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	hostelRepo := postgres.NewHostelRepo(db)
	pollRepo := postgres.NewPollRepo(db)
	voteRepo := postgres.NewVoteRepo(db)
	issueRepo := postgres.NewIssueRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)

	userSvc := user.NewService(userRepo)
	hostelSvc := hostel.NewService(hostelRepo)
	pollSvc := poll.NewService(pollRepo, voteRepo)
	voteSvc := vote.NewService(voteRepo)
	issueSvc := issue.NewService(issueRepo)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, "")

	events := make(chan worker.Event, cfg.EventBuffer)
	notifier := worker.NewNotifier(events, notifRepo, logger)

	router := api.NewRouter(userSvc, pollSvc, voteSvc, issueSvc, hostelSvc, notifRepo, jwtMgr, events, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notifier.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
