package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/handlers"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/testutil"
)

// TestCalendarHandler_AddHoliday tests the POST /api/calendar/holiday endpoint.
//
// WHY: Staff record market holidays here; a date that does not land in the
// market_holiday table keeps appearing as a missing-data day in every
// assembled series.
func TestCalendarHandler_AddHoliday(t *testing.T) {
	t.Run("records the holiday", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCalendarHandler(testutil.NewTestCalendarService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/calendar/holiday",
			bytes.NewBufferString(`{"date": "2026-03-04", "description": "Holi"}`))
		w := httptest.NewRecorder()

		// Execute
		handler.AddHoliday(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM market_holiday WHERE date = ?`, "2026-03-04").Scan(&count)
		if err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 stored holiday, got %d", count)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCalendarHandler(testutil.NewTestCalendarService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/calendar/holiday",
			bytes.NewBufferString(`{"date": "04-Mar-2026", "description": "Holi"}`))
		w := httptest.NewRecorder()

		// Execute
		handler.AddHoliday(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCalendarHandler(testutil.NewTestCalendarService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/calendar/holiday",
			bytes.NewBufferString(`not json`))
		w := httptest.NewRecorder()

		// Execute
		handler.AddHoliday(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
