package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
)

// ApprovalService transitions funds and schemes between approved and
// unapproved, cascading the visibility flag to dependent rows. Each call is a
// single transaction committed once.
type ApprovalService struct {
	db         *sql.DB
	fundRepo   *repository.FundRepository
	schemeRepo *repository.SchemeRepository
	navRepo    *repository.NavRepository
}

// NewApprovalService creates a new ApprovalService with the provided repository dependencies.
func NewApprovalService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	schemeRepo *repository.SchemeRepository,
	navRepo *repository.NavRepository,
) *ApprovalService {
	return &ApprovalService{
		db:         db,
		fundRepo:   fundRepo,
		schemeRepo: schemeRepo,
		navRepo:    navRepo,
	}
}

// SetFundApproval sets a fund's approval and visibility flags and cascades
// the decision to every child scheme and every NAV record of the fund.
// Returns false (with nil error) when no fund with that ID exists.
func (s *ApprovalService) SetFundApproval(ctx context.Context, fundID, approvedBy string, approved bool) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	rowsAffected, err := s.fundRepo.WithTx(tx).SetApproval(ctx, fundID, approvedBy, approved)
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	if err := s.schemeRepo.WithTx(tx).SetApprovalByFund(ctx, fundID, approved); err != nil {
		return false, err
	}

	if err := s.navRepo.WithTx(tx).SetVisibilityByFund(ctx, fundID, approved); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit fund approval: %w", err)
	}

	return true, nil
}

// SetSchemeApproval sets a scheme's approval and visibility flags and
// cascades the decision to the scheme's NAV records.
//
// Approving a scheme also force-approves its parent fund, so a fund becomes
// visible through any one approved child. Unapproving a scheme deliberately
// leaves the fund untouched: sibling schemes may still be approved. This
// asymmetry is intentional.
//
// Returns false (with nil error) when no scheme with that code exists.
func (s *ApprovalService) SetSchemeApproval(ctx context.Context, schemeCode, approvedBy string, approved bool) (bool, error) {
	scheme, err := s.schemeRepo.GetScheme(schemeCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchemeNotFound) {
			return false, nil
		}
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	if _, err := s.schemeRepo.WithTx(tx).SetApproval(ctx, schemeCode, approved); err != nil {
		return false, err
	}

	if err := s.navRepo.WithTx(tx).SetVisibilityByScheme(ctx, schemeCode, approved); err != nil {
		return false, err
	}

	if approved {
		if _, err := s.fundRepo.WithTx(tx).SetApproval(ctx, scheme.FundID, approvedBy, true); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit scheme approval: %w", err)
	}

	return true, nil
}
