package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/middleware"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/calendar"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/config"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	navService *service.NavService,
	importService *service.ImportService,
	approvalService *service.ApprovalService,
	investmentService *service.InvestmentService,
	feedConfigService *service.FeedConfigService,
	calendarService *calendar.Service,
	fundRepo *repository.FundRepository,
	schemeRepo *repository.SchemeRepository,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		fundHandler := handlers.NewFundHandler(fundRepo, schemeRepo, approvalService)
		navHandler := handlers.NewNavHandler(navService)

		// Public read surface: visible funds, schemes and series only
		r.Route("/fund", func(r chi.Router) {
			r.Get("/", fundHandler.Funds)
			r.Get("/{fundId}/schemes", fundHandler.FundSchemes)

			r.With(custommiddleware.APIKeyMiddleware).Put("/{fundId}/approval", fundHandler.SetFundApproval)
		})

		r.Route("/scheme", func(r chi.Router) {
			r.With(custommiddleware.APIKeyMiddleware).Put("/{code}/approval", fundHandler.SetSchemeApproval)
		})

		r.Route("/nav", func(r chi.Router) {
			r.Get("/history", navHandler.SchemeHistory)
			r.Get("/history/{code}", navHandler.SchemeHistoryByCode)
			r.Get("/movement", navHandler.LatestMovement)
		})

		// Staff surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			r.Get("/fund", fundHandler.AllFunds)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			calendarHandler := handlers.NewCalendarHandler(calendarService)
			r.Post("/holiday", calendarHandler.AddHoliday)
		})

		r.Route("/feed", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			feedHandler := handlers.NewFeedHandler(importService, feedConfigService)
			r.Post("/import", feedHandler.ImportFeed)
			r.Get("/config", feedHandler.GetFeedConfig)
			r.Put("/config", feedHandler.SaveFeedConfig)
		})

		r.Route("/investment", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			investmentHandler := handlers.NewInvestmentHandler(investmentService)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Get("/", investmentHandler.Investments)
			r.Delete("/{uuid}", investmentHandler.DeleteInvestment)
		})
	})

	return r
}
