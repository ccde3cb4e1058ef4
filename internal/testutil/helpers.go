package testutil

import (
	"database/sql"
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/calendar"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	navRepo := repository.NewNavRepository(db)

	return service.NewImportService(
		db,
		fundRepo,
		schemeRepo,
		navRepo,
	)
}

func NewTestApprovalService(t *testing.T, db *sql.DB) *service.ApprovalService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)
	navRepo := repository.NewNavRepository(db)

	return service.NewApprovalService(
		db,
		fundRepo,
		schemeRepo,
		navRepo,
	)
}

func NewTestNavService(t *testing.T, db *sql.DB) *service.NavService {
	t.Helper()

	navRepo := repository.NewNavRepository(db)
	calendarService := calendar.NewService(repository.NewHolidayRepository(db))

	return service.NewNavService(navRepo, calendarService)
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	schemeRepo := repository.NewSchemeRepository(db)

	return service.NewInvestmentService(
		investmentRepo,
		schemeRepo,
	)
}

func NewTestCalendarService(t *testing.T, db *sql.DB) *calendar.Service {
	t.Helper()

	return calendar.NewService(repository.NewHolidayRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSchemeCode generates a six-digit numeric scheme code for testing.
//
// Example usage:
//
//	code := testutil.MakeSchemeCode()
//	// Returns: "483920"
func MakeSchemeCode() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Tech Mutual Fund")
//	// Returns: "Tech Mutual Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeSchemeName generates a unique scheme name for testing.
//
// Example usage:
//
//	name := testutil.MakeSchemeName("Liquid Fund")
//	// Returns: "Liquid Fund XYZ789 - Growth"
func MakeSchemeName(base string) string {
	if base == "" {
		base = "Scheme"
	}
	return base + " " + randomAlphanumeric(6) + " - Growth"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
