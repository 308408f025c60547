package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golf-backend/internal/config"
	"golf-backend/internal/database"
	"golf-backend/internal/handlers"
	"golf-backend/internal/middleware"
	"golf-backend/internal/services"
	"golf-backend/internal/upstream"

	"github.com/hashicorp/go-multierror"
)

func main() {
	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := upstream.Options{
		Timeout:       cfg.Upstream.Timeout,
		MaxAttempts:   cfg.Upstream.MaxAttempts,
		RetryInterval: cfg.Upstream.RetryInterval,
	}
	sportsData := upstream.NewSportsData(cfg.Upstream.SportsDataURL, cfg.Upstream.SportsDataKey, opts)
	liveGolf := upstream.NewLiveGolf(cfg.Upstream.LiveGolfURL, cfg.Upstream.RapidAPIKey, cfg.Upstream.RapidAPIHost, opts)
	golfCourses := upstream.NewGolfCourses(cfg.Upstream.GolfCourseURL, cfg.Upstream.GolfCourseKey, opts)
	images := upstream.NewImageSearch(cfg.Upstream.SerpAPIURL, cfg.Upstream.SerpAPIKey, cfg.Upstream.ImageDenylist, opts)

	enricher := services.NewEnricher(images)
	router := handlers.NewRouter(handlers.Routes{
		Auth:        handlers.NewAuthHandler(db, cfg.JWTSecret, cfg.Cookie),
		Players:     handlers.NewPlayerHandler(services.NewPlayerService(db, liveGolf, sportsData, cfg.RankingYear)),
		Tournaments: handlers.NewTournamentHandler(services.NewTournamentService(db, sportsData, enricher)),
		Courses: handlers.NewCourseHandler(
			services.NewCourseService(db, golfCourses, enricher, cfg.CourseCacheTTL, cfg.CourseDefaultQuery),
			services.NewFlagService(db),
		),
		Middleware: middleware.NewAuthMiddleware(cfg.JWTSecret, cfg.Cookie.Name),
	})

	handler := middleware.Logger(middleware.CORS(cfg.CORSOrigins)(router))

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var result *multierror.Error
	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("shutdown server: %w", err))
	}
	if err := db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}
	if err := result.ErrorOrNil(); err != nil {
		log.Fatalf("Shutdown finished with errors: %v", err)
	}
	log.Println("Server stopped")
}
