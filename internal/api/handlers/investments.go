package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/request"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/validation"
	"github.com/shopspring/decimal"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// CreateInvestment handles POST requests to record an investment against an
// approved scheme.
//
// Endpoint: POST /api/investment
// Response: 201 Created with the new investment ID
// Error: 400 Bad Request on validation failure
// Error: 404 Not Found if the scheme does not exist
// Error: 409 Conflict if the scheme is not approved
// Error: 500 Internal Server Error if insertion fails
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// Validation already guarantees these parse.
	amount, _ := decimal.NewFromString(req.Amount)
	units, _ := decimal.NewFromString(req.Units)
	date, _ := validation.ParseTime(req.Date)

	inv := model.Investment{
		SchemeCode:   req.SchemeCode,
		InvestorName: req.InvestorName,
		Amount:       amount,
		Units:        units,
		Date:         date,
	}

	id, err := h.investmentService.RecordInvestment(r.Context(), inv)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSchemeNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSchemeNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrSchemeNotApproved):
			response.RespondError(w, http.StatusConflict, apperrors.ErrSchemeNotApproved.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to record investment", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Investments handles GET requests to list investments, optionally filtered
// by scheme code.
//
// Endpoint: GET /api/investment?schemeCode=123456
func (h *InvestmentHandler) Investments(w http.ResponseWriter, r *http.Request) {
	schemeCode := r.URL.Query().Get("schemeCode")

	investments, err := h.investmentService.GetInvestments(schemeCode)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// DeleteInvestment handles DELETE requests to remove an investment record.
//
// Endpoint: DELETE /api/investment/{uuid}
// Error: 400 Bad Request if the ID is not a UUID
// Error: 404 Not Found if no investment with that ID exists
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(investmentID); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), err.Error())
		return
	}

	if err := h.investmentService.DeleteInvestment(r.Context(), investmentID); err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
