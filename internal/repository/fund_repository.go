package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *FundRepository) getQuerier() interface {
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

// GetFund retrieves a single fund by its derived ID.
// Returns apperrors.ErrFundNotFound if no fund with that ID exists.
func (r *FundRepository) GetFund(fundID string) (model.Fund, error) {
	query := `
		SELECT id, name, approved, visible, approved_by, created_at, updated_at
		FROM fund
		WHERE id = ?
	`

	var f model.Fund
	var createdStr, updatedStr string

	err := r.getQuerier().QueryRow(query, fundID).Scan(
		&f.ID,
		&f.Name,
		&f.Approved,
		&f.Visible,
		&f.ApprovedBy,
		&createdStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund table: %w", err)
	}

	if f.CreatedAt, err = ParseTime(createdStr); err != nil {
		return model.Fund{}, err
	}
	if f.UpdatedAt, err = ParseTime(updatedStr); err != nil {
		return model.Fund{}, err
	}

	return f, nil
}

// GetAllFunds retrieves all funds, optionally restricted to visible ones.
// Returns an empty slice if no funds are found.
func (r *FundRepository) GetAllFunds(visibleOnly bool) ([]model.Fund, error) {
	query := `
		SELECT id, name, approved, visible, approved_by, created_at, updated_at
		FROM fund
	`

	if visibleOnly {
		query += ` WHERE visible = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		var f model.Fund
		var createdStr, updatedStr string

		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Approved,
			&f.Visible,
			&f.ApprovedBy,
			&createdStr,
			&updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}

		if f.CreatedAt, err = ParseTime(createdStr); err != nil {
			return nil, err
		}
		if f.UpdatedAt, err = ParseTime(updatedStr); err != nil {
			return nil, err
		}

		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// InsertFund inserts a new fund row.
func (r *FundRepository) InsertFund(ctx context.Context, f model.Fund) error {
	query := `
		INSERT INTO fund (id, name, approved, visible, approved_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.getQuerier().ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.Approved,
		f.Visible,
		f.ApprovedBy,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// SetApproval updates the approval and visibility flags of a fund.
// Both flags always move together on the fund itself.
// Returns the number of rows affected (0 when the fund does not exist).
func (r *FundRepository) SetApproval(ctx context.Context, fundID, approvedBy string, approved bool) (int64, error) {
	query := `
		UPDATE fund
		SET approved = ?, visible = ?, approved_by = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		approved,
		approved,
		approvedBy,
		time.Now().UTC().Format(time.RFC3339),
		fundID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update fund approval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
