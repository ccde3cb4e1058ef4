// Package calendar derives the canonical trading-day calendar used to align
// NAV series: weekdays in a window minus stored market holidays.
package calendar

import (
	"context"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
)

// Service supplies ordered trading-day lists for requested windows.
type Service struct {
	holidayRepo *repository.HolidayRepository
}

// NewService creates a new calendar Service with the provided repository dependency.
func NewService(holidayRepo *repository.HolidayRepository) *Service {
	return &Service{
		holidayRepo: holidayRepo,
	}
}

// TradingDays returns the ordered list of trading days in the inclusive
// window: every weekday that is not a stored market holiday.
func (s *Service) TradingDays(startDate, endDate time.Time) ([]time.Time, error) {
	holidays, err := s.holidayRepo.GetHolidaysBetween(startDate, endDate)
	if err != nil {
		return nil, err
	}

	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Format("2006-01-02")] = true
	}

	days := []time.Time{}
	for _, day := range WeekdaysBetween(startDate, endDate) {
		if !holidaySet[day.Format("2006-01-02")] {
			days = append(days, day)
		}
	}

	return days, nil
}

// AddHoliday records a market holiday so subsequent windows exclude the date.
func (s *Service) AddHoliday(ctx context.Context, date time.Time, description string) error {
	return s.holidayRepo.InsertHoliday(ctx, model.MarketHoliday{
		Date:        date,
		Description: description,
	})
}

// WeekdaysBetween returns every Monday-to-Friday date in the inclusive
// window, in ascending order.
func WeekdaysBetween(startDate, endDate time.Time) []time.Time {
	days := []time.Time{}

	day := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)

	for !day.After(end) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}

	return days
}
