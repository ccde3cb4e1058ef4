package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/handlers"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/testutil"
)

// TestNavHandler_SchemeHistory tests the GET /api/nav/history endpoint.
//
// WHY: The date-window contract (boundary parameters, both required, start
// before end) is the public API surface the frontend calendar is built on.
func TestNavHandler_SchemeHistory(t *testing.T) {
	t.Run("returns assembled history for the window", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		fund := testutil.NewFund().WithID("ABC_MF").MarkApproved().Build(t, db)
		scheme := testutil.NewScheme(fund.ID).MarkApproved().Build(t, db)
		testutil.NewNavRecord(fund, scheme).
			WithDate(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)).
			WithVisible(true).
			Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/nav/history",
			map[string]string{
				"startDate": "2026-03-01",
				"endDate":   "2026-03-07",
			},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistory(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.SchemeHistory
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 history, got %d", len(response))
		}
		if len(response[0].Entries) != 5 {
			t.Errorf("Expected 5 entries (Mon-Fri), got %d", len(response[0].Entries))
		}
	})

	t.Run("returns 400 when dates are missing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/nav/history", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistory(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 when the window is inverted", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/nav/history",
			map[string]string{
				"startDate": "2026-03-07",
				"endDate":   "2026-03-01",
			},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistory(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestNavHandler_SchemeHistoryByCode tests the GET /api/nav/history/{code}
// endpoint.
//
// WHY: Scheme detail pages request one code; an unknown or fully hidden
// scheme must answer 404 so the page can distinguish "no such scheme" from a
// window of holiday markers.
func TestNavHandler_SchemeHistoryByCode(t *testing.T) {
	historyRequest := func(code string) *http.Request {
		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/nav/history/"+code,
			map[string]string{
				"startDate": "2026-03-01",
				"endDate":   "2026-03-07",
			},
		)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("code", code)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("returns the scheme's assembled history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		fund := testutil.NewFund().WithID("ABC_MF").MarkApproved().Build(t, db)
		scheme := testutil.NewScheme(fund.ID).WithCode("119551").MarkApproved().Build(t, db)
		testutil.NewNavRecord(fund, scheme).
			WithDate(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)).
			WithVisible(true).
			Build(t, db)

		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistoryByCode(w, historyRequest("119551"))

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.SchemeHistory
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.SchemeCode != "119551" {
			t.Errorf("SchemeCode = %q, want the requested scheme", response.SchemeCode)
		}
		if len(response.Entries) != 5 {
			t.Errorf("Expected 5 entries (Mon-Fri), got %d", len(response.Entries))
		}
	})

	t.Run("returns 404 for a scheme with no records", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistoryByCode(w, historyRequest("999999"))

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns 400 when dates are missing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/nav/history/119551",
			map[string]string{"code": "119551"},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SchemeHistoryByCode(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestNavHandler_LatestMovement tests the GET /api/nav/movement endpoint.
//
// WHY: With no qualifying schemes the endpoint must answer 200 with a zero
// count, not an error status; the dashboard treats that as "no data yet".
func TestNavHandler_LatestMovement(t *testing.T) {
	t.Run("empty history answers 200 with zero count", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/nav/movement", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.LatestMovement(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.TransformResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Count != 0 {
			t.Errorf("Count = %d, want 0", response.Count)
		}
		if response.LatestDate != nil {
			t.Error("LatestDate should be null with no data")
		}
	})

	t.Run("returns movement rows for recent history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewNavHandler(testutil.NewTestNavService(t, db))

		fund := testutil.NewFund().WithID("ABC_MF").MarkApproved().Build(t, db)
		scheme := testutil.NewScheme(fund.ID).MarkApproved().Build(t, db)

		now := time.Now().UTC()
		for i, nav := range []string{"100", "101", "102"} {
			testutil.NewNavRecord(fund, scheme).
				WithNav(nav).
				WithDate(now.AddDate(0, 0, i-3)).
				WithVisible(true).
				Build(t, db)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/nav/movement", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.LatestMovement(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.TransformResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Count != 1 {
			t.Errorf("Count = %d, want 1", response.Count)
		}
	})
}
