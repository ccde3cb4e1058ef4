package service

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
)

// SystemApprover is the placeholder approver identity stamped on funds
// created by ingestion before any staff member has reviewed them.
const SystemApprover = "SYSTEM"

// ImportService ingests raw AMFI NAV feed text into the fund, scheme and
// nav_record tables. One import call is one sequential pass over the feed
// lines inside a single transaction; lines are never processed out of order
// because the current-fund context carries forward from each fund-name line
// to the data lines below it.
//
// The service holds no per-run state on itself, so concurrent imports do not
// share a current-fund context. Callers racing on the same new fund name must
// still serialize externally; the check-then-insert registry relies on the
// table's primary key to reject the loser.
type ImportService struct {
	db         *sql.DB
	fundRepo   *repository.FundRepository
	schemeRepo *repository.SchemeRepository
	navRepo    *repository.NavRepository
}

// NewImportService creates a new ImportService with the provided repository dependencies.
func NewImportService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	schemeRepo *repository.SchemeRepository,
	navRepo *repository.NavRepository,
) *ImportService {
	return &ImportService{
		db:         db,
		fundRepo:   fundRepo,
		schemeRepo: schemeRepo,
		navRepo:    navRepo,
	}
}

// importState is the explicit per-run state threaded through the line loop.
type importState struct {
	fundID   string
	fundName string
}

// ImportAmfiData parses the raw feed text and stores funds, schemes and NAV
// records. The whole run commits once at the end; any persistence failure
// rolls back everything and is surfaced to the caller.
//
// Parsing is best-effort: malformed data lines are skipped and counted, never
// fatal. Records are append-only, so re-importing the same feed duplicates
// (scheme, date) rows.
func (s *ImportService) ImportAmfiData(ctx context.Context, rawText string) (model.ImportSummary, error) {
	summary := model.ImportSummary{}

	if strings.TrimSpace(rawText) == "" {
		return summary, apperrors.ErrEmptyFeed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	fundRepo := s.fundRepo.WithTx(tx)
	schemeRepo := s.schemeRepo.WithTx(tx)
	navRepo := s.navRepo.WithTx(tx)

	now := time.Now().UTC()
	state := importState{}

	scanner := bufio.NewScanner(strings.NewReader(rawText))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := classifyLine(scanner.Text(), now)

		switch line.Kind {
		case headerLine:
			continue

		case malformedLine:
			summary.LinesSkipped++

		case fundLine:
			fundID, created, err := s.ensureFund(ctx, fundRepo, line.FundName)
			if err != nil {
				return summary, err
			}
			if created {
				summary.FundsCreated++
			}
			state = importState{fundID: fundID, fundName: line.FundName}

		case dataLine:
			// A data line before any fund-name line has no fund to
			// attach to; treat it like a malformed line.
			if state.fundID == "" {
				summary.LinesSkipped++
				continue
			}

			created, err := s.ensureScheme(ctx, schemeRepo, line.Record, state.fundID)
			if err != nil {
				return summary, err
			}
			if created {
				summary.SchemesCreated++
			}

			if err := s.appendRecord(ctx, navRepo, schemeRepo, line.Record, state); err != nil {
				return summary, err
			}
			summary.RecordsInserted++
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read feed text: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("feed import complete: %d funds, %d schemes, %d records, %d lines skipped",
		summary.FundsCreated, summary.SchemesCreated, summary.RecordsInserted, summary.LinesSkipped)

	return summary, nil
}

// ensureFund makes sure a fund row exists for the given display name and
// returns its derived ID. Safe to call repeatedly with the same name within
// one run; the fund is only inserted on first encounter.
func (s *ImportService) ensureFund(ctx context.Context, fundRepo *repository.FundRepository, fundName string) (string, bool, error) {
	fundID := DeriveFundID(fundName)

	_, err := fundRepo.GetFund(fundID)
	if err == nil {
		return fundID, false, nil
	}
	if !errors.Is(err, apperrors.ErrFundNotFound) {
		return "", false, err
	}

	fund := model.Fund{
		ID:         fundID,
		Name:       fundName,
		Approved:   false,
		Visible:    false,
		ApprovedBy: SystemApprover,
	}
	if err := fundRepo.InsertFund(ctx, fund); err != nil {
		return "", false, err
	}

	return fundID, true, nil
}

// ensureScheme makes sure a scheme row exists for the feed-assigned code,
// referencing the current fund.
func (s *ImportService) ensureScheme(ctx context.Context, schemeRepo *repository.SchemeRepository, rec navLine, fundID string) (bool, error) {
	_, err := schemeRepo.GetScheme(rec.SchemeCode)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrSchemeNotFound) {
		return false, err
	}

	scheme := model.Scheme{
		Code:     rec.SchemeCode,
		Name:     rec.SchemeName,
		FundID:   fundID,
		Approved: false,
		Visible:  false,
	}
	if err := schemeRepo.InsertScheme(ctx, scheme); err != nil {
		return false, err
	}

	return true, nil
}

// appendRecord inserts one NAV observation. The new row inherits the
// last-known visibility of the scheme's existing history, so freshly imported
// data for an approved scheme stays visible without waiting for another
// approval pass. Existing (scheme, date) rows are never overwritten.
func (s *ImportService) appendRecord(
	ctx context.Context,
	navRepo *repository.NavRepository,
	schemeRepo *repository.SchemeRepository,
	rec navLine,
	state importState,
) error {
	visible, found, err := navRepo.GetFirstVisibility(rec.SchemeCode)
	if err != nil {
		return err
	}
	if !found {
		scheme, err := schemeRepo.GetScheme(rec.SchemeCode)
		if err != nil {
			return err
		}
		visible = scheme.Visible
	}

	record := model.NavRecord{
		FundID:     state.fundID,
		FundName:   state.fundName,
		SchemeCode: rec.SchemeCode,
		SchemeName: rec.SchemeName,
		Nav:        rec.Nav,
		Date:       rec.Date,
		Visible:    visible,
	}

	return navRepo.InsertRecord(ctx, record)
}
