package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/request"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/calendar"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/validation"
)

// CalendarHandler handles HTTP requests for the trading calendar. Staff
// endpoints, guarded by the API-key middleware.
type CalendarHandler struct {
	calendarService *calendar.Service
}

// NewCalendarHandler creates a new CalendarHandler with the provided service dependency.
func NewCalendarHandler(calendarService *calendar.Service) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
	}
}

// AddHoliday handles POST requests to record a market holiday. Recorded
// dates drop out of the trading calendar used to assemble NAV series.
//
// Endpoint: POST /api/calendar/holiday
// Response: 201 Created
// Error: 400 Bad Request on missing or malformed date
func (h *CalendarHandler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req request.MarketHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date, err := validation.ParseTime(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	if err := h.calendarService.AddHoliday(r.Context(), date, req.Description); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to record holiday", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, nil)
}
