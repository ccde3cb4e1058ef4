package service

import (
	"math"
	"sort"
	"strconv"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
)

// TransformSchemes computes the compact "latest movement" view: for each
// scheme, the three most recent NAV observations (before, previous, today)
// with day-over-day percent changes.
//
// Rows are grouped by scheme name, ordered by date ascending within each
// group. Groups with fewer than three observations are dropped from the
// output entirely. Percent math runs in 64-bit floating point and the
// increase flags use >= so an unchanged NAV counts as an increase. Both
// differ from BuildSchemeHistory, which rounds in decimal and treats ties
// as no growth. The two views are historical behavior and are not to be
// unified.
//
// The aggregate reports the qualifying-scheme count, the max "today" date and
// the min "previous" date. With zero qualifying schemes both dates are nil
// and the count is zero; this is a reportable no-data condition, not an
// error. Pure function, no I/O.
func TransformSchemes(rows []model.SchemeDetail) model.TransformResult {
	groups, order := groupBySchemeName(rows)

	result := model.TransformResult{
		Schemes: []model.TransformedScheme{},
	}

	for _, name := range order {
		group := groups[name]
		if len(group) < 3 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		before := group[len(group)-3]
		previous := group[len(group)-2]
		today := group[len(group)-1]

		beforeNav, _ := before.Nav.Float64()
		previousNav, _ := previous.Nav.Float64()
		todayNav, _ := today.Nav.Float64()

		scheme := model.TransformedScheme{
			SchemeName:         name,
			FundName:           today.FundName,
			BeforeDate:         before.Date,
			PreviousDate:       previous.Date,
			TodayDate:          today.Date,
			BeforeNav:          beforeNav,
			PreviousNav:        previousNav,
			TodayNav:           todayNav,
			PreviousPercent:    formatPercent((previousNav - beforeNav) / beforeNav * 100),
			TodayPercent:       formatPercent((todayNav - previousNav) / previousNav * 100),
			IsPreviousIncrease: previousNav >= beforeNav,
			IsTodayIncrease:    todayNav >= previousNav,
		}

		result.Schemes = append(result.Schemes, scheme)
		result.Count++

		if result.LatestDate == nil || today.Date.After(*result.LatestDate) {
			latest := today.Date
			result.LatestDate = &latest
		}
		if result.EarliestDate == nil || previous.Date.Before(*result.EarliestDate) {
			earliest := previous.Date
			result.EarliestDate = &earliest
		}
	}

	return result
}

// groupBySchemeName splits rows into per-name groups, preserving each name's
// first-appearance order.
func groupBySchemeName(rows []model.SchemeDetail) (map[string][]model.SchemeDetail, []string) {
	groups := make(map[string][]model.SchemeDetail)
	order := []string{}

	for _, row := range rows {
		if _, seen := groups[row.SchemeName]; !seen {
			order = append(order, row.SchemeName)
		}
		groups[row.SchemeName] = append(groups[row.SchemeName], row)
	}

	return groups, order
}

// formatPercent renders a percent value with at most two decimal digits and
// a trailing percent sign, e.g. "1.23%", "-0.5%", "2%".
func formatPercent(value float64) string {
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}
