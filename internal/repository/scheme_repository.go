package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// SchemeRepository provides data access methods for the scheme table.
type SchemeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSchemeRepository creates a new SchemeRepository with the provided database connection.
func NewSchemeRepository(db *sql.DB) *SchemeRepository {
	return &SchemeRepository{db: db}
}

func (r *SchemeRepository) WithTx(tx *sql.Tx) *SchemeRepository {
	return &SchemeRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SchemeRepository) getQuerier() interface {
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

// GetScheme retrieves a single scheme by its feed-assigned code.
// Returns apperrors.ErrSchemeNotFound if no scheme with that code exists.
func (r *SchemeRepository) GetScheme(code string) (model.Scheme, error) {
	query := `
		SELECT code, name, fund_id, approved, visible, created_at, updated_at
		FROM scheme
		WHERE code = ?
	`

	var s model.Scheme
	var createdStr, updatedStr string

	err := r.getQuerier().QueryRow(query, code).Scan(
		&s.Code,
		&s.Name,
		&s.FundID,
		&s.Approved,
		&s.Visible,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return model.Scheme{}, apperrors.ErrSchemeNotFound
	}
	if err != nil {
		return model.Scheme{}, fmt.Errorf("failed to query scheme table: %w", err)
	}

	if s.CreatedAt, err = ParseTime(createdStr); err != nil {
		return model.Scheme{}, err
	}
	if s.UpdatedAt, err = ParseTime(updatedStr); err != nil {
		return model.Scheme{}, err
	}

	return s, nil
}

// GetSchemesByFund retrieves all schemes belonging to a fund, optionally
// restricted to visible ones. Returns an empty slice if none are found.
func (r *SchemeRepository) GetSchemesByFund(fundID string, visibleOnly bool) ([]model.Scheme, error) {
	query := `
		SELECT code, name, fund_id, approved, visible, created_at, updated_at
		FROM scheme
		WHERE fund_id = ?
	`

	if visibleOnly {
		query += ` AND visible = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.getQuerier().Query(query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheme table: %w", err)
	}
	defer rows.Close()

	schemes := []model.Scheme{}

	for rows.Next() {
		var s model.Scheme
		var createdStr, updatedStr string

		err := rows.Scan(
			&s.Code,
			&s.Name,
			&s.FundID,
			&s.Approved,
			&s.Visible,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheme table results: %w", err)
		}

		if s.CreatedAt, err = ParseTime(createdStr); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = ParseTime(updatedStr); err != nil {
			return nil, err
		}

		schemes = append(schemes, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheme table: %w", err)
	}

	return schemes, nil
}

// InsertScheme inserts a new scheme row referencing an existing fund.
func (r *SchemeRepository) InsertScheme(ctx context.Context, s model.Scheme) error {
	query := `
		INSERT INTO scheme (code, name, fund_id, approved, visible, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.getQuerier().ExecContext(ctx, query,
		s.Code,
		s.Name,
		s.FundID,
		s.Approved,
		s.Visible,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scheme: %w", err)
	}

	return nil
}

// SetApproval updates the approval and visibility flags of a single scheme.
// Returns the number of rows affected (0 when the scheme does not exist).
func (r *SchemeRepository) SetApproval(ctx context.Context, code string, approved bool) (int64, error) {
	query := `
		UPDATE scheme
		SET approved = ?, visible = ?, updated_at = ?
		WHERE code = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		approved,
		approved,
		time.Now().UTC().Format(time.RFC3339),
		code,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update scheme approval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// SetApprovalByFund cascades a fund-level approval decision to every scheme
// under the fund.
func (r *SchemeRepository) SetApprovalByFund(ctx context.Context, fundID string, approved bool) error {
	query := `
		UPDATE scheme
		SET approved = ?, visible = ?, updated_at = ?
		WHERE fund_id = ?
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		approved,
		approved,
		time.Now().UTC().Format(time.RFC3339),
		fundID,
	)
	if err != nil {
		return fmt.Errorf("failed to cascade approval to schemes: %w", err)
	}

	return nil
}
