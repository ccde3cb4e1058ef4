package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("ABC Mutual Fund").
//	    MarkApproved().
//	    Build(t, db)
type FundBuilder struct {
	ID         string
	Name       string
	Approved   bool
	Visible    bool
	ApprovedBy string
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	name := MakeFundName("Test Mutual Fund")
	return &FundBuilder{
		ID:         name, // callers usually override with WithID
		Name:       name,
		Approved:   false,
		Visible:    false,
		ApprovedBy: "",
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// MarkApproved marks the fund as approved and visible.
func (b *FundBuilder) MarkApproved() *FundBuilder {
	b.Approved = true
	b.Visible = true
	b.ApprovedBy = "SYSTEM"
	return b
}

// WithVisible sets the visibility flag directly.
func (b *FundBuilder) WithVisible(visible bool) *FundBuilder {
	b.Visible = visible
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO fund (id, name, approved, visible, approved_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Approved, b.Visible, b.ApprovedBy, now, now)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:         b.ID,
		Name:       b.Name,
		Approved:   b.Approved,
		Visible:    b.Visible,
		ApprovedBy: b.ApprovedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateFund creates a fund with the given ID and name and default flags.
//
// Example usage:
//
//	fund := testutil.CreateFund(t, db, "ABC_MF", "ABC Mutual Fund")
func CreateFund(t *testing.T, db *sql.DB, id, name string) model.Fund {
	t.Helper()
	return NewFund().WithID(id).WithName(name).Build(t, db)
}

// SchemeBuilder provides a fluent interface for creating test schemes.
//
// Example usage:
//
//	scheme := testutil.NewScheme(fund.ID).
//	    WithCode("119551").
//	    WithName("ABC Liquid Fund - Growth").
//	    Build(t, db)
type SchemeBuilder struct {
	Code     string
	Name     string
	FundID   string
	Approved bool
	Visible  bool
}

// NewScheme creates a SchemeBuilder with sensible defaults.
func NewScheme(fundID string) *SchemeBuilder {
	return &SchemeBuilder{
		Code:     MakeSchemeCode(),
		Name:     MakeSchemeName("Test Scheme"),
		FundID:   fundID,
		Approved: false,
		Visible:  false,
	}
}

// WithCode sets a custom scheme code.
func (b *SchemeBuilder) WithCode(code string) *SchemeBuilder {
	b.Code = code
	return b
}

// WithName sets a custom name.
func (b *SchemeBuilder) WithName(name string) *SchemeBuilder {
	b.Name = name
	return b
}

// MarkApproved marks the scheme as approved and visible.
func (b *SchemeBuilder) MarkApproved() *SchemeBuilder {
	b.Approved = true
	b.Visible = true
	return b
}

// WithVisible sets the visibility flag directly.
func (b *SchemeBuilder) WithVisible(visible bool) *SchemeBuilder {
	b.Visible = visible
	return b
}

// Build creates the scheme in the database and returns it.
func (b *SchemeBuilder) Build(t *testing.T, db *sql.DB) model.Scheme {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO scheme (code, name, fund_id, approved, visible, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.Code, b.Name, b.FundID, b.Approved, b.Visible, now, now)
	if err != nil {
		t.Fatalf("Failed to create test scheme: %v", err)
	}

	return model.Scheme{
		Code:      b.Code,
		Name:      b.Name,
		FundID:    b.FundID,
		Approved:  b.Approved,
		Visible:   b.Visible,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateScheme creates a scheme with the given code under the fund.
func CreateScheme(t *testing.T, db *sql.DB, fundID, code string) model.Scheme {
	t.Helper()
	return NewScheme(fundID).WithCode(code).Build(t, db)
}

// NavRecordBuilder provides a fluent interface for creating NAV history rows.
//
// Example usage:
//
//	rec := testutil.NewNavRecord(fund, scheme).
//	    WithNav("104.2517").
//	    WithDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type NavRecordBuilder struct {
	ID         string
	FundID     string
	FundName   string
	SchemeCode string
	SchemeName string
	Nav        decimal.Decimal
	Date       time.Time
	Visible    bool
}

// NewNavRecord creates a NavRecordBuilder for the given fund and scheme.
func NewNavRecord(fund model.Fund, scheme model.Scheme) *NavRecordBuilder {
	return &NavRecordBuilder{
		ID:         MakeID(),
		FundID:     fund.ID,
		FundName:   fund.Name,
		SchemeCode: scheme.Code,
		SchemeName: scheme.Name,
		Nav:        decimal.NewFromInt(100),
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
		Visible:    scheme.Visible,
	}
}

// WithNav sets the NAV value from its decimal string form.
func (b *NavRecordBuilder) WithNav(nav string) *NavRecordBuilder {
	d, err := decimal.NewFromString(nav)
	if err != nil {
		panic("invalid test NAV: " + nav)
	}
	b.Nav = d
	return b
}

// WithDate sets the observation date.
func (b *NavRecordBuilder) WithDate(date time.Time) *NavRecordBuilder {
	b.Date = date
	return b
}

// WithVisible sets the visibility flag.
func (b *NavRecordBuilder) WithVisible(visible bool) *NavRecordBuilder {
	b.Visible = visible
	return b
}

// Build creates the NAV record in the database and returns it.
func (b *NavRecordBuilder) Build(t *testing.T, db *sql.DB) model.NavRecord {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO nav_record (id, fund_id, fund_name, scheme_code, scheme_name, nav, date, visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.FundID, b.FundName, b.SchemeCode, b.SchemeName,
		b.Nav.String(), b.Date.Format("2006-01-02"), b.Visible, now)
	if err != nil {
		t.Fatalf("Failed to create test NAV record: %v", err)
	}

	return model.NavRecord{
		ID:         b.ID,
		FundID:     b.FundID,
		FundName:   b.FundName,
		SchemeCode: b.SchemeCode,
		SchemeName: b.SchemeName,
		Nav:        b.Nav,
		Date:       b.Date,
		Visible:    b.Visible,
		CreatedAt:  now,
	}
}

// CreateHoliday inserts a market holiday for the given date.
//
// Example usage:
//
//	testutil.CreateHoliday(t, db, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), "Holi")
func CreateHoliday(t *testing.T, db *sql.DB, date time.Time, description string) {
	t.Helper()

	query := `
		INSERT INTO market_holiday (id, date, description)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), date.Format("2006-01-02"), description)
	if err != nil {
		t.Fatalf("Failed to create test holiday: %v", err)
	}
}
