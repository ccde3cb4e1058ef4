package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/validation"
)

// NavHandler handles HTTP requests for NAV history and movement endpoints.
type NavHandler struct {
	navService *service.NavService
}

// NewNavHandler creates a new NavHandler with the provided service dependency.
func NewNavHandler(navService *service.NavService) *NavHandler {
	return &NavHandler{
		navService: navService,
	}
}

// SchemeHistory handles GET requests to retrieve the assembled daily NAV
// series for all visible schemes. startDate and endDate are boundary dates;
// the returned series covers the trading days strictly between them.
//
// Endpoint: GET /api/nav/history?startDate=2024-01-01&endDate=2024-02-01
// Response: 200 OK with array of SchemeHistory
// Error: 400 Bad Request on missing or malformed dates
// Error: 500 Internal Server Error if assembly fails
func (h *NavHandler) SchemeHistory(w http.ResponseWriter, r *http.Request) {
	startDate, err := validation.ParseTime(r.URL.Query().Get("startDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid startDate", err.Error())
		return
	}
	endDate, err := validation.ParseTime(r.URL.Query().Get("endDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid endDate", err.Error())
		return
	}
	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	histories, err := h.navService.GetSchemeHistory(startDate, endDate, true)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, histories)
}

// SchemeHistoryByCode handles GET requests to retrieve the assembled daily
// NAV series of one scheme.
//
// Endpoint: GET /api/nav/history/{code}?startDate=2024-01-01&endDate=2024-02-01
// Response: 200 OK with SchemeHistory
// Error: 400 Bad Request on missing or malformed dates
// Error: 404 Not Found if the scheme has no visible observation in the window
func (h *NavHandler) SchemeHistoryByCode(w http.ResponseWriter, r *http.Request) {
	schemeCode := chi.URLParam(r, "code")

	startDate, err := validation.ParseTime(r.URL.Query().Get("startDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid startDate", err.Error())
		return
	}
	endDate, err := validation.ParseTime(r.URL.Query().Get("endDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid endDate", err.Error())
		return
	}
	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	history, err := h.navService.GetSchemeHistoryByCode(schemeCode, startDate, endDate, true)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNavRecordNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNavRecordNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrInvalidDateRange):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// LatestMovement handles GET requests to retrieve the three-point movement
// summary of every visible scheme with at least three recent observations.
//
// Endpoint: GET /api/nav/movement
// Response: 200 OK with TransformResult; count is 0 and dates are null when
// no scheme qualifies
func (h *NavHandler) LatestMovement(w http.ResponseWriter, _ *http.Request) {
	result, err := h.navService.GetLatestMovement(true)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
