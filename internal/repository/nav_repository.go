package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// NavRepository provides data access methods for the nav_record table.
// The table is append-only: rows are inserted during feed imports and only
// the visibility flag is ever updated, by the approval cascade.
type NavRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewNavRepository creates a new NavRepository with the provided database connection.
func NewNavRepository(db *sql.DB) *NavRepository {
	return &NavRepository{db: db}
}

func (r *NavRepository) WithTx(tx *sql.Tx) *NavRepository {
	return &NavRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *NavRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertRecord appends one NAV observation. An existing row for the same
// (scheme, date) is never updated; duplicates are allowed.
func (r *NavRepository) InsertRecord(ctx context.Context, rec model.NavRecord) error {
	query := `
		INSERT INTO nav_record (id, fund_id, fund_name, scheme_code, scheme_name, nav, date, visible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		id,
		rec.FundID,
		rec.FundName,
		rec.SchemeCode,
		rec.SchemeName,
		rec.Nav.String(),
		FormatDate(rec.Date),
		rec.Visible,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert nav record: %w", err)
	}

	return nil
}

// GetFirstVisibility returns the visibility flag of the first stored record
// for a scheme code. The second return value reports whether any record
// exists. New records inherit this flag so a scheme's history stays uniformly
// visible or hidden between approval cascades.
func (r *NavRepository) GetFirstVisibility(schemeCode string) (bool, bool, error) {
	query := `
		SELECT visible
		FROM nav_record
		WHERE scheme_code = ?
		LIMIT 1
	`

	var visible bool
	err := r.getQuerier().QueryRow(query, schemeCode).Scan(&visible)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to query nav_record visibility: %w", err)
	}

	return visible, true, nil
}

// GetSchemeDetails retrieves the flattened per-(scheme, date) projection for
// all records in the inclusive date range, optionally restricted to visible
// rows. Results are ordered by scheme code then date ascending.
func (r *NavRepository) GetSchemeDetails(startDate, endDate time.Time, visibleOnly bool) ([]model.SchemeDetail, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("startDate (%s) must be before or equal to endDate (%s)",
			FormatDate(startDate), FormatDate(endDate))
	}

	query := `
		SELECT fund_id, fund_name, scheme_code, scheme_name, visible, date, nav
		FROM nav_record
		WHERE date >= ? AND date <= ?
	`

	args := []any{FormatDate(startDate), FormatDate(endDate)}

	if visibleOnly {
		query += ` AND visible = 1`
	}
	query += ` ORDER BY scheme_code ASC, date ASC`

	return r.queryDetails(query, args)
}

// GetSchemeDetailsByCode retrieves the projection rows of a single scheme in
// the inclusive date range, ordered by date ascending.
func (r *NavRepository) GetSchemeDetailsByCode(schemeCode string, startDate, endDate time.Time) ([]model.SchemeDetail, error) {
	query := `
		SELECT fund_id, fund_name, scheme_code, scheme_name, visible, date, nav
		FROM nav_record
		WHERE scheme_code = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`

	return r.queryDetails(query, []any{schemeCode, FormatDate(startDate), FormatDate(endDate)})
}

func (r *NavRepository) queryDetails(query string, args []any) ([]model.SchemeDetail, error) {
	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_record table: %w", err)
	}
	defer rows.Close()

	details := []model.SchemeDetail{}

	for rows.Next() {
		var d model.SchemeDetail
		var dateStr, navStr string

		err := rows.Scan(
			&d.FundCode,
			&d.FundName,
			&d.SchemeCode,
			&d.SchemeName,
			&d.Visible,
			&dateStr,
			&navStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nav_record results: %w", err)
		}

		if d.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if d.Nav, err = decimal.NewFromString(navStr); err != nil {
			return nil, fmt.Errorf("failed to parse nav value: %w", err)
		}

		details = append(details, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_record table: %w", err)
	}

	return details, nil
}

// CountRecordsOnDate returns the number of NAV rows observed on a date.
// Used by the scheduler to decide whether today's feed was already imported.
func (r *NavRepository) CountRecordsOnDate(date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM nav_record WHERE date = ?`

	var count int
	if err := r.getQuerier().QueryRow(query, FormatDate(date)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nav records: %w", err)
	}

	return count, nil
}

// SetVisibilityByFund cascades a fund-level visibility decision to every NAV
// row whose fund matches.
func (r *NavRepository) SetVisibilityByFund(ctx context.Context, fundID string, visible bool) error {
	query := `UPDATE nav_record SET visible = ? WHERE fund_id = ?`

	if _, err := r.getQuerier().ExecContext(ctx, query, visible, fundID); err != nil {
		return fmt.Errorf("failed to cascade visibility to nav records: %w", err)
	}

	return nil
}

// SetVisibilityByScheme cascades a scheme-level visibility decision to every
// NAV row whose scheme code matches.
func (r *NavRepository) SetVisibilityByScheme(ctx context.Context, schemeCode string, visible bool) error {
	query := `UPDATE nav_record SET visible = ? WHERE scheme_code = ?`

	if _, err := r.getQuerier().ExecContext(ctx, query, visible, schemeCode); err != nil {
		return fmt.Errorf("failed to cascade visibility to nav records: %w", err)
	}

	return nil
}
