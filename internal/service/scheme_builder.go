package service

import (
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// holidayPercentage is the placeholder percent string emitted for trading
// holidays and for days with no earlier positive NAV to compare against.
const holidayPercentage = "100"

// BuildSchemeHistory reconstructs one contiguous daily NAV series per scheme
// from flat per-date rows and a caller-supplied trading-day calendar.
//
// Rows are grouped by scheme code, not name, so two schemes sharing a display
// name stay distinct. For every calendar date strictly between startDate and
// endDate (both boundaries excluded), a group either contributes its NAV for
// that date, rounded to four decimal places with the day-over-day percent
// change against the nearest strictly-earlier positive NAV as a fixed
// two-decimal string, or an explicit trading-holiday placeholder. Holiday
// placeholders keep the series contiguous for front-end calendar alignment
// instead of silently skipping missing days.
//
// The growth flag uses strict greater-than: an unchanged NAV is not growth.
// Emitted entries follow the order of tradingDates as supplied; the builder
// does not re-sort. Pure function, no I/O.
func BuildSchemeHistory(rows []model.SchemeDetail, tradingDates []time.Time, startDate, endDate time.Time) []model.SchemeHistory {
	groups, order := groupBySchemeCode(rows)

	histories := []model.SchemeHistory{}

	for _, code := range order {
		group := groups[code]
		first := group[0]

		history := model.SchemeHistory{
			FundName:   first.FundName,
			SchemeCode: first.SchemeCode,
			SchemeName: first.SchemeName,
			Entries:    []model.SchemeHistoryEntry{},
		}

		for _, date := range tradingDates {
			if !date.After(startDate) || !date.Before(endDate) {
				continue
			}

			row, found := findRowForDate(group, date)
			if !found {
				history.Entries = append(history.Entries, model.SchemeHistoryEntry{
					Date:             date,
					Nav:              nil,
					Percentage:       holidayPercentage,
					IsGrowth:         false,
					IsTradingHoliday: true,
				})
				continue
			}

			nav := row.Nav.Round(4)
			entry := model.SchemeHistoryEntry{
				Date:       date,
				Nav:        &nav,
				Percentage: holidayPercentage,
			}

			if prev, ok := findPreviousPositiveNav(group, date); ok {
				change := row.Nav.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
				entry.Percentage = change.Round(2).StringFixed(2)
				entry.IsGrowth = row.Nav.GreaterThan(prev)
			}

			history.Entries = append(history.Entries, entry)
		}

		histories = append(histories, history)
	}

	return histories
}

// groupBySchemeCode splits rows into per-scheme groups, preserving each
// code's first-appearance order.
func groupBySchemeCode(rows []model.SchemeDetail) (map[string][]model.SchemeDetail, []string) {
	groups := make(map[string][]model.SchemeDetail)
	order := []string{}

	for _, row := range rows {
		if _, seen := groups[row.SchemeCode]; !seen {
			order = append(order, row.SchemeCode)
		}
		groups[row.SchemeCode] = append(groups[row.SchemeCode], row)
	}

	return groups, order
}

// findRowForDate looks up a group's row for the exact calendar date.
func findRowForDate(group []model.SchemeDetail, date time.Time) (model.SchemeDetail, bool) {
	for _, row := range group {
		if sameDate(row.Date, date) {
			return row, true
		}
	}
	return model.SchemeDetail{}, false
}

// findPreviousPositiveNav returns the NAV of the nearest strictly-earlier
// date in the group with a positive value.
func findPreviousPositiveNav(group []model.SchemeDetail, date time.Time) (decimal.Decimal, bool) {
	var best model.SchemeDetail
	found := false

	for _, row := range group {
		if !row.Date.Before(date) || !row.Nav.IsPositive() {
			continue
		}
		if !found || row.Date.After(best.Date) {
			best = row
			found = true
		}
	}

	return best.Nav, found
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
