package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// FeedConfigRepository provides data access methods for the feed_config table.
// The table holds at most one row; the auth token column stores a fernet
// ciphertext produced by the service layer.
type FeedConfigRepository struct {
	db *sql.DB
}

// NewFeedConfigRepository creates a new FeedConfigRepository with the provided database connection.
func NewFeedConfigRepository(db *sql.DB) *FeedConfigRepository {
	return &FeedConfigRepository{db: db}
}

// GetFeedConfig retrieves the feed configuration.
// Returns apperrors.ErrFeedConfigNotFound when none has been stored.
func (r *FeedConfigRepository) GetFeedConfig() (model.FeedConfig, error) {
	query := `
		SELECT id, feed_url, auth_token, timezone, schedule, last_import_date, updated_at
		FROM feed_config
		LIMIT 1
	`

	var cfg model.FeedConfig
	var authToken, lastImportStr sql.NullString
	var updatedStr string

	err := r.db.QueryRow(query).Scan(
		&cfg.ID,
		&cfg.FeedURL,
		&authToken,
		&cfg.Timezone,
		&cfg.Schedule,
		&lastImportStr,
		&updatedStr,
	)
	if err == sql.ErrNoRows {
		return model.FeedConfig{}, apperrors.ErrFeedConfigNotFound
	}
	if err != nil {
		return model.FeedConfig{}, fmt.Errorf("failed to query feed_config table: %w", err)
	}

	if authToken.Valid {
		cfg.AuthToken = authToken.String
	}
	if lastImportStr.Valid {
		lastImport, err := ParseTime(lastImportStr.String)
		if err != nil {
			return model.FeedConfig{}, err
		}
		cfg.LastImportDate = &lastImport
	}
	if cfg.UpdatedAt, err = ParseTime(updatedStr); err != nil {
		return model.FeedConfig{}, err
	}

	return cfg, nil
}

// UpsertFeedConfig inserts or replaces the single feed configuration row.
func (r *FeedConfigRepository) UpsertFeedConfig(ctx context.Context, cfg model.FeedConfig) error {
	query := `
		INSERT INTO feed_config (id, feed_url, auth_token, timezone, schedule, last_import_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			feed_url = excluded.feed_url,
			auth_token = excluded.auth_token,
			timezone = excluded.timezone,
			schedule = excluded.schedule,
			updated_at = excluded.updated_at
	`

	id := cfg.ID
	if id == "" {
		id = uuid.New().String()
	}

	var lastImport any
	if cfg.LastImportDate != nil {
		lastImport = FormatDate(*cfg.LastImportDate)
	}

	_, err := r.db.ExecContext(ctx, query,
		id,
		cfg.FeedURL,
		cfg.AuthToken,
		cfg.Timezone,
		cfg.Schedule,
		lastImport,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert feed config: %w", err)
	}

	return nil
}

// SetLastImportDate records the date of the most recent successful import.
func (r *FeedConfigRepository) SetLastImportDate(ctx context.Context, date time.Time) error {
	query := `UPDATE feed_config SET last_import_date = ?, updated_at = ?`

	_, err := r.db.ExecContext(ctx, query,
		FormatDate(date),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to update last import date: %w", err)
	}

	return nil
}
