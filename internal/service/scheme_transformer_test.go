package service_test

import (
	"testing"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

// TestTransformSchemes tests the latest-movement view.
//
// WHY: This view powers the dashboard ticker. Its rules differ from the
// history builder on purpose (name grouping, float math, ties count as
// increases, minimum of three observations), and those differences are
// load-bearing historical behavior.
func TestTransformSchemes(t *testing.T) {
	t.Run("builds before previous today triple per scheme", func(t *testing.T) {
		rows := []model.SchemeDetail{
			detail("119551", "Scheme A", day(1), "100"),
			detail("119551", "Scheme A", day(2), "101"),
			detail("119551", "Scheme A", day(3), "102.5"),
		}

		result := service.TransformSchemes(rows)

		if result.Count != 1 {
			t.Fatalf("Count = %d, want 1", result.Count)
		}

		s := result.Schemes[0]
		if s.BeforeNav != 100 || s.PreviousNav != 101 || s.TodayNav != 102.5 {
			t.Errorf("NAV triple = (%v, %v, %v), want (100, 101, 102.5)",
				s.BeforeNav, s.PreviousNav, s.TodayNav)
		}
		if s.PreviousPercent != "1%" {
			t.Errorf("PreviousPercent = %q, want \"1%%\"", s.PreviousPercent)
		}
		// (102.5-101)/101*100 = 1.48514... -> "1.49%"
		if s.TodayPercent != "1.49%" {
			t.Errorf("TodayPercent = %q, want \"1.49%%\"", s.TodayPercent)
		}
		if !s.IsPreviousIncrease || !s.IsTodayIncrease {
			t.Error("Rising NAVs should set both increase flags")
		}
	})

	t.Run("schemes with fewer than three observations are dropped", func(t *testing.T) {
		rows := []model.SchemeDetail{
			detail("119551", "Thin Scheme", day(1), "100"),
			detail("119551", "Thin Scheme", day(2), "101"),
			detail("119552", "Full Scheme", day(1), "200"),
			detail("119552", "Full Scheme", day(2), "201"),
			detail("119552", "Full Scheme", day(3), "202"),
		}

		result := service.TransformSchemes(rows)

		if result.Count != 1 {
			t.Fatalf("Count = %d, want 1", result.Count)
		}
		if result.Schemes[0].SchemeName != "Full Scheme" {
			t.Errorf("Qualifying scheme = %q, want \"Full Scheme\"", result.Schemes[0].SchemeName)
		}
	})

	t.Run("unchanged nav counts as increase", func(t *testing.T) {
		rows := []model.SchemeDetail{
			detail("119551", "Scheme A", day(1), "100"),
			detail("119551", "Scheme A", day(2), "100"),
			detail("119551", "Scheme A", day(3), "100"),
		}

		result := service.TransformSchemes(rows)

		s := result.Schemes[0]
		if !s.IsPreviousIncrease || !s.IsTodayIncrease {
			t.Error("Flat NAV should count as an increase in the movement view")
		}
		if s.TodayPercent != "0%" {
			t.Errorf("TodayPercent = %q, want \"0%%\"", s.TodayPercent)
		}
	})

	t.Run("uses the three most recent observations regardless of input order", func(t *testing.T) {
		rows := []model.SchemeDetail{
			detail("119551", "Scheme A", day(4), "104"),
			detail("119551", "Scheme A", day(1), "101"),
			detail("119551", "Scheme A", day(3), "103"),
			detail("119551", "Scheme A", day(2), "102"),
		}

		result := service.TransformSchemes(rows)

		s := result.Schemes[0]
		if !s.BeforeDate.Equal(day(2)) || !s.PreviousDate.Equal(day(3)) || !s.TodayDate.Equal(day(4)) {
			t.Errorf("Date triple = (%v, %v, %v), want days 2, 3, 4",
				s.BeforeDate, s.PreviousDate, s.TodayDate)
		}
	})

	t.Run("groups by scheme name not code", func(t *testing.T) {
		// Two codes sharing one display name pool their observations
		rows := []model.SchemeDetail{
			detail("119551", "Shared Name", day(1), "100"),
			detail("119552", "Shared Name", day(2), "101"),
			detail("119551", "Shared Name", day(3), "102"),
		}

		result := service.TransformSchemes(rows)

		if result.Count != 1 {
			t.Errorf("Count = %d, want 1 (rows merged by name)", result.Count)
		}
	})

	t.Run("aggregate dates span the qualifying schemes", func(t *testing.T) {
		rows := []model.SchemeDetail{
			detail("119551", "Scheme A", day(1), "100"),
			detail("119551", "Scheme A", day(2), "101"),
			detail("119551", "Scheme A", day(3), "102"),
			detail("119552", "Scheme B", day(2), "200"),
			detail("119552", "Scheme B", day(4), "201"),
			detail("119552", "Scheme B", day(5), "202"),
		}

		result := service.TransformSchemes(rows)

		if result.LatestDate == nil || !result.LatestDate.Equal(day(5)) {
			t.Errorf("LatestDate = %v, want day 5", result.LatestDate)
		}
		if result.EarliestDate == nil || !result.EarliestDate.Equal(day(2)) {
			t.Errorf("EarliestDate = %v, want day 2", result.EarliestDate)
		}
	})

	t.Run("empty input reports zero count and nil dates", func(t *testing.T) {
		result := service.TransformSchemes(nil)

		if result.Count != 0 {
			t.Errorf("Count = %d, want 0", result.Count)
		}
		if result.LatestDate != nil || result.EarliestDate != nil {
			t.Error("Aggregate dates should be nil with no qualifying schemes")
		}
		if result.Schemes == nil {
			t.Error("Schemes should be an empty slice, not nil")
		}
	})
}
