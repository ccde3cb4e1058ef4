package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// InvestmentRepository provides data access methods for the investment table.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *InvestmentRepository) getQuerier() interface {
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

// InsertInvestment inserts a new investment row and returns its generated ID.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv model.Investment) (string, error) {
	query := `
		INSERT INTO investment (id, scheme_code, investor_name, amount, units, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id := inv.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		id,
		inv.SchemeCode,
		inv.InvestorName,
		inv.Amount.String(),
		inv.Units.String(),
		FormatDate(inv.Date),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert investment: %w", err)
	}

	return id, nil
}

// GetInvestments retrieves investments joined with scheme names. If
// schemeCode is empty, investments across all schemes are returned.
func (r *InvestmentRepository) GetInvestments(schemeCode string) ([]model.Investment, error) {
	query := `
		SELECT i.id, i.scheme_code, s.name, i.investor_name, i.amount, i.units, i.date, i.created_at
		FROM investment i
		JOIN scheme s ON s.code = i.scheme_code
	`

	var args []any

	if schemeCode != "" {
		query += ` WHERE i.scheme_code = ?`
		args = append(args, schemeCode)
	}
	query += ` ORDER BY i.date DESC, i.created_at DESC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		var inv model.Investment
		var amountStr, unitsStr, dateStr, createdStr string

		err := rows.Scan(
			&inv.ID,
			&inv.SchemeCode,
			&inv.SchemeName,
			&inv.InvestorName,
			&amountStr,
			&unitsStr,
			&dateStr,
			&createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		if inv.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse investment amount: %w", err)
		}
		if inv.Units, err = decimal.NewFromString(unitsStr); err != nil {
			return nil, fmt.Errorf("failed to parse investment units: %w", err)
		}
		if inv.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if inv.CreatedAt, err = ParseTime(createdStr); err != nil {
			return nil, err
		}

		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// DeleteInvestment removes an investment by ID.
// Returns apperrors.ErrInvestmentNotFound when no row matches.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	query := `DELETE FROM investment WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, investmentID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}
