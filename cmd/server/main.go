package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/amfi"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/calendar"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/config"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/database"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/scheduler"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	navRepo := repository.NewNavRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	feedConfigRepo := repository.NewFeedConfigRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	calendarService := calendar.NewService(holidayRepo)
	importService := service.NewImportService(db, fundRepo, schemeRepo, navRepo)
	approvalService := service.NewApprovalService(db, fundRepo, schemeRepo, navRepo)
	navService := service.NewNavService(navRepo, calendarService)
	investmentService := service.NewInvestmentService(investmentRepo, schemeRepo)
	feedConfigService, err := service.NewFeedConfigService(feedConfigRepo, cfg.Feed.TokenKey)
	if err != nil {
		log.Fatalf("Failed to create feed config service: %v", err)
	}

	// Seed the feed configuration from the environment on first boot so the
	// scheduler can run before staff have saved one through the API.
	if _, err := feedConfigService.GetFeedConfig(); errors.Is(err, apperrors.ErrFeedConfigNotFound) && cfg.Feed.DefaultURL != "" {
		seed := model.FeedConfig{
			FeedURL:  cfg.Feed.DefaultURL,
			Timezone: cfg.Scheduler.Timezone,
			Schedule: cfg.Scheduler.Schedule,
		}
		if err := feedConfigService.SaveFeedConfig(context.Background(), seed); err != nil {
			log.Fatalf("Failed to seed feed configuration: %v", err)
		}
		log.Printf("Seeded feed configuration with default URL: %s", cfg.Feed.DefaultURL)
	}

	// Start the daily import scheduler. Sunday and Monday carry no fresh
	// NAV publication for the previous trading day.
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(
			importService,
			feedConfigService,
			navRepo,
			amfi.NewFeedClient(),
			cfg.Scheduler.Timezone,
			[]time.Weekday{time.Sunday, time.Monday},
		)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		if err := sched.Start(cfg.Scheduler.Schedule); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Create router
	router := api.NewRouter(
		systemService,
		navService,
		importService,
		approvalService,
		investmentService,
		feedConfigService,
		calendarService,
		fundRepo,
		schemeRepo,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
