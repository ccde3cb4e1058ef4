package service

import (
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/calendar"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// movementWindowDays is how far back the latest-movement view looks for the
// three most recent observations per scheme.
const movementWindowDays = 10

// NavService orchestrates read access to the persisted NAV history: it loads
// raw rows and the trading calendar, then delegates to the pure
// BuildSchemeHistory and TransformSchemes functions.
type NavService struct {
	navRepo         *repository.NavRepository
	calendarService *calendar.Service
}

// NewNavService creates a new NavService with the provided dependencies.
func NewNavService(navRepo *repository.NavRepository, calendarService *calendar.Service) *NavService {
	return &NavService{
		navRepo:         navRepo,
		calendarService: calendarService,
	}
}

// GetSchemeHistory assembles the per-scheme daily series for the window.
// startDate and endDate are boundary dates: the assembled series covers the
// trading days strictly between them. The raw rows and the trading calendar
// load concurrently.
func (s *NavService) GetSchemeHistory(startDate, endDate time.Time, visibleOnly bool) ([]model.SchemeHistory, error) {
	if !startDate.Before(endDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	var rows []model.SchemeDetail
	var tradingDays []time.Time

	var g errgroup.Group
	g.Go(func() error {
		var err error
		rows, err = s.navRepo.GetSchemeDetails(startDate, endDate, visibleOnly)
		return err
	})
	g.Go(func() error {
		var err error
		tradingDays, err = s.calendarService.TradingDays(startDate, endDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildSchemeHistory(rows, tradingDays, startDate, endDate), nil
}

// GetSchemeHistoryByCode assembles the daily series of a single scheme.
// Returns ErrNavRecordNotFound when the scheme has no observations in the
// window, so callers can distinguish an unknown scheme from a quiet one with
// holiday markers.
func (s *NavService) GetSchemeHistoryByCode(schemeCode string, startDate, endDate time.Time, visibleOnly bool) (model.SchemeHistory, error) {
	if !startDate.Before(endDate) {
		return model.SchemeHistory{}, apperrors.ErrInvalidDateRange
	}

	rows, err := s.navRepo.GetSchemeDetailsByCode(schemeCode, startDate, endDate)
	if err != nil {
		return model.SchemeHistory{}, err
	}

	if visibleOnly {
		visible := rows[:0]
		for _, row := range rows {
			if row.Visible {
				visible = append(visible, row)
			}
		}
		rows = visible
	}

	if len(rows) == 0 {
		return model.SchemeHistory{}, apperrors.ErrNavRecordNotFound
	}

	tradingDays, err := s.calendarService.TradingDays(startDate, endDate)
	if err != nil {
		return model.SchemeHistory{}, err
	}

	return BuildSchemeHistory(rows, tradingDays, startDate, endDate)[0], nil
}

// GetLatestMovement computes the three-point movement summary over the most
// recent observations.
func (s *NavService) GetLatestMovement(visibleOnly bool) (model.TransformResult, error) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -movementWindowDays)

	rows, err := s.navRepo.GetSchemeDetails(startDate, endDate, visibleOnly)
	if err != nil {
		return model.TransformResult{}, err
	}

	return TransformSchemes(rows), nil
}
