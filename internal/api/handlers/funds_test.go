package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/handlers"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/testutil"
)

func newFundHandler(t *testing.T, db *sql.DB) *handlers.FundHandler {
	t.Helper()
	return handlers.NewFundHandler(
		repository.NewFundRepository(db),
		repository.NewSchemeRepository(db),
		testutil.NewTestApprovalService(t, db),
	)
}

// newRequestWithBodyAndParams builds a request carrying both a JSON body and
// chi URL parameters.
func newRequestWithBodyAndParams(method, path string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestFundHandler_Funds tests the GET /api/fund endpoint.
//
// WHY: This is the public fund listing; it must only surface visible funds
// with proper status codes and JSON formatting.
func TestFundHandler_Funds(t *testing.T) {
	t.Run("GET /api/fund returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/fund", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Funds(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		contentType := w.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		var response []model.Fund
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("GET /api/fund hides unapproved funds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		visible := testutil.NewFund().WithID("VISIBLE_MF").MarkApproved().Build(t, db)
		testutil.NewFund().WithID("HIDDEN_MF").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/fund", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Funds(w, req)

		// Assert
		var response []model.Fund
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 visible fund, got %d", len(response))
		}
		if response[0].ID != visible.ID {
			t.Errorf("Expected fund %s, got %s", visible.ID, response[0].ID)
		}
	})

	t.Run("GET /api/admin/fund includes hidden funds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		testutil.NewFund().WithID("VISIBLE_MF").MarkApproved().Build(t, db)
		testutil.NewFund().WithID("HIDDEN_MF").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/fund", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.AllFunds(w, req)

		// Assert
		var response []model.Fund
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Errorf("Expected 2 funds in the admin view, got %d", len(response))
		}
	})
}

// TestFundHandler_FundSchemes tests the GET /api/fund/{fundId}/schemes endpoint.
//
// WHY: Scheme listings are scoped per fund and filtered by visibility; a leak
// here exposes unreviewed schemes on the public API.
func TestFundHandler_FundSchemes(t *testing.T) {
	t.Run("returns only the fund's visible schemes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		fund := testutil.NewFund().WithID("ABC_MF").MarkApproved().Build(t, db)
		other := testutil.NewFund().WithID("OTHER_MF").MarkApproved().Build(t, db)
		visible := testutil.NewScheme(fund.ID).MarkApproved().Build(t, db)
		testutil.NewScheme(fund.ID).Build(t, db)
		testutil.NewScheme(other.ID).MarkApproved().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/fund/ABC_MF/schemes",
			map[string]string{"fundId": fund.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.FundSchemes(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Scheme
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 scheme, got %d", len(response))
		}
		if response[0].Code != visible.Code {
			t.Errorf("Expected scheme %s, got %s", visible.Code, response[0].Code)
		}
	})
}

// TestFundHandler_SetFundApproval tests the PUT /api/fund/{fundId}/approval endpoint.
//
// WHY: Approval is the only write endpoint on funds; the 404 contract for
// unknown IDs and the request-body validation both belong to the API surface.
func TestFundHandler_SetFundApproval(t *testing.T) {
	t.Run("approves an existing fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		fund := testutil.NewFund().WithID("ABC_MF").Build(t, db)

		body := bytes.NewBufferString(`{"approved": true, "approvedBy": "reviewer"}`)
		req := newRequestWithBodyAndParams(
			http.MethodPut,
			"/api/fund/ABC_MF/approval",
			body,
			map[string]string{"fundId": fund.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SetFundApproval(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var approved bool
		if err := db.QueryRow(`SELECT approved FROM fund WHERE id = ?`, fund.ID).Scan(&approved); err != nil {
			t.Fatalf("Fund query failed: %v", err)
		}
		if !approved {
			t.Error("Fund should be approved")
		}
	})

	t.Run("returns 404 for an unknown fund", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		body := bytes.NewBufferString(`{"approved": true}`)
		req := newRequestWithBodyAndParams(
			http.MethodPut,
			"/api/fund/NOPE_MF/approval",
			body,
			map[string]string{"fundId": "NOPE_MF"},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SetFundApproval(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := newFundHandler(t, db)

		fund := testutil.NewFund().WithID("ABC_MF").Build(t, db)

		body := bytes.NewBufferString(`not json`)
		req := newRequestWithBodyAndParams(
			http.MethodPut,
			"/api/fund/ABC_MF/approval",
			body,
			map[string]string{"fundId": fund.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SetFundApproval(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
