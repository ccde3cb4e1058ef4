package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// HolidayRepository provides data access methods for the market_holiday table.
type HolidayRepository struct {
	db *sql.DB
}

// NewHolidayRepository creates a new HolidayRepository with the provided database connection.
func NewHolidayRepository(db *sql.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// GetHolidaysBetween retrieves market holiday dates in the inclusive range,
// ordered ascending.
func (r *HolidayRepository) GetHolidaysBetween(startDate, endDate time.Time) ([]time.Time, error) {
	query := `
		SELECT date
		FROM market_holiday
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, FormatDate(startDate), FormatDate(endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query market_holiday table: %w", err)
	}
	defer rows.Close()

	holidays := []time.Time{}

	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan market_holiday results: %w", err)
		}

		date, err := ParseTime(dateStr)
		if err != nil {
			return nil, err
		}

		holidays = append(holidays, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_holiday table: %w", err)
	}

	return holidays, nil
}

// InsertHoliday records a market holiday. Duplicate dates are rejected by the
// table's unique constraint.
func (r *HolidayRepository) InsertHoliday(ctx context.Context, h model.MarketHoliday) error {
	query := `
		INSERT INTO market_holiday (id, date, description)
		VALUES (?, ?, ?)
	`

	id := h.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, query, id, FormatDate(h.Date), h.Description)
	if err != nil {
		return fmt.Errorf("failed to insert market holiday: %w", err)
	}

	return nil
}
