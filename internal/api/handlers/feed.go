package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/request"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

// FeedHandler handles HTTP requests for feed import and configuration.
// Staff endpoints, guarded by the API-key middleware.
type FeedHandler struct {
	importService     *service.ImportService
	feedConfigService *service.FeedConfigService
}

// NewFeedHandler creates a new FeedHandler with the provided service dependencies.
func NewFeedHandler(
	importService *service.ImportService,
	feedConfigService *service.FeedConfigService,
) *FeedHandler {
	return &FeedHandler{
		importService:     importService,
		feedConfigService: feedConfigService,
	}
}

// ImportFeed handles POST requests to run a feed import over raw text
// supplied in the body.
//
// Endpoint: POST /api/feed/import
// Response: 200 OK with ImportSummary
// Error: 400 Bad Request on malformed body or empty feed text
// Error: 500 Internal Server Error if the import fails (the run is rolled back)
func (h *FeedHandler) ImportFeed(w http.ResponseWriter, r *http.Request) {
	var req request.ImportFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	summary, err := h.importService.ImportAmfiData(r.Context(), req.RawText)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyFeed) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrEmptyFeed.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// GetFeedConfig handles GET requests for the stored feed settings. The auth
// token is never echoed back.
//
// Endpoint: GET /api/feed/config
func (h *FeedHandler) GetFeedConfig(w http.ResponseWriter, _ *http.Request) {
	cfg, err := h.feedConfigService.GetFeedConfig()
	if err != nil {
		if errors.Is(err, apperrors.ErrFeedConfigNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFeedConfigNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve feed config", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

// SaveFeedConfig handles PUT requests to store feed settings.
//
// Endpoint: PUT /api/feed/config
func (h *FeedHandler) SaveFeedConfig(w http.ResponseWriter, r *http.Request) {
	var req request.FeedConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.FeedURL == "" {
		response.RespondError(w, http.StatusBadRequest, "feedUrl is required", nil)
		return
	}

	cfg := model.FeedConfig{
		FeedURL:   req.FeedURL,
		AuthToken: req.AuthToken,
		Timezone:  req.Timezone,
		Schedule:  req.Schedule,
	}
	if err := h.feedConfigService.SaveFeedConfig(r.Context(), cfg); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save feed config", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
