package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/request"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/response"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

// FundHandler handles HTTP requests for fund and scheme endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the services.
type FundHandler struct {
	fundRepo        *repository.FundRepository
	schemeRepo      *repository.SchemeRepository
	approvalService *service.ApprovalService
}

// NewFundHandler creates a new FundHandler with the provided dependencies.
func NewFundHandler(
	fundRepo *repository.FundRepository,
	schemeRepo *repository.SchemeRepository,
	approvalService *service.ApprovalService,
) *FundHandler {
	return &FundHandler{
		fundRepo:        fundRepo,
		schemeRepo:      schemeRepo,
		approvalService: approvalService,
	}
}

// Funds handles GET requests to retrieve visible funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, _ *http.Request) {
	funds, err := h.fundRepo.GetAllFunds(true)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// AllFunds handles GET requests to retrieve every fund regardless of
// visibility. Staff endpoint, guarded by the API-key middleware.
//
// Endpoint: GET /api/admin/fund
func (h *FundHandler) AllFunds(w http.ResponseWriter, _ *http.Request) {
	funds, err := h.fundRepo.GetAllFunds(false)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// FundSchemes handles GET requests to retrieve the visible schemes of a fund.
//
// Endpoint: GET /api/fund/{fundId}/schemes
// Response: 200 OK with array of Scheme
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) FundSchemes(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	schemes, err := h.schemeRepo.GetSchemesByFund(fundID, true)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSchemes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, schemes)
}

// SetFundApproval handles PUT requests to approve or unapprove a fund,
// cascading visibility to its schemes and NAV records.
//
// Endpoint: PUT /api/fund/{fundId}/approval
// Response: 200 OK on success
// Error: 400 Bad Request if the body is malformed
// Error: 404 Not Found if no fund with that ID exists
// Error: 500 Internal Server Error if the cascade fails
func (h *FundHandler) SetFundApproval(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "fundId")

	var req request.SetApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = service.SystemApprover
	}

	found, err := h.approvalService.SetFundApproval(r.Context(), fundID, approvedBy, req.Approved)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSetApproval.Error(), err.Error())
		return
	}
	if !found {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrFundNotFound.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}

// SetSchemeApproval handles PUT requests to approve or unapprove a scheme.
// Approving also force-approves the parent fund; unapproving leaves the fund
// untouched.
//
// Endpoint: PUT /api/scheme/{code}/approval
func (h *FundHandler) SetSchemeApproval(w http.ResponseWriter, r *http.Request) {
	schemeCode := chi.URLParam(r, "code")

	var req request.SetApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = service.SystemApprover
	}

	found, err := h.approvalService.SetSchemeApproval(r.Context(), schemeCode, approvedBy, req.Approved)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSetApproval.Error(), err.Error())
		return
	}
	if !found {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSchemeNotFound.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]bool{"approved": req.Approved})
}
