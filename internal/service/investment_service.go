package service

import (
	"context"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
)

// InvestmentService handles investment record business logic.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	schemeRepo     *repository.SchemeRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependencies.
func NewInvestmentService(
	investmentRepo *repository.InvestmentRepository,
	schemeRepo *repository.SchemeRepository,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		schemeRepo:     schemeRepo,
	}
}

// RecordInvestment stores an investment against a scheme. The scheme must
// exist and be approved; investments against unapproved schemes are rejected.
func (s *InvestmentService) RecordInvestment(ctx context.Context, inv model.Investment) (string, error) {
	scheme, err := s.schemeRepo.GetScheme(inv.SchemeCode)
	if err != nil {
		return "", err
	}

	if !scheme.Approved {
		return "", apperrors.ErrSchemeNotApproved
	}

	if inv.Amount.IsNegative() || inv.Units.IsNegative() {
		return "", apperrors.ErrNegativeAmount
	}

	return s.investmentRepo.InsertInvestment(ctx, inv)
}

// GetInvestments retrieves investments, optionally filtered by scheme code.
func (s *InvestmentService) GetInvestments(schemeCode string) ([]model.Investment, error) {
	return s.investmentRepo.GetInvestments(schemeCode)
}

// DeleteInvestment removes an investment record by ID.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	if investmentID == "" {
		return apperrors.ErrEmptyID
	}
	return s.investmentRepo.DeleteInvestment(ctx, investmentID)
}
