package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemeHistoryEntry is one day in a scheme's assembled NAV series.
// Nav is nil on trading holidays; Percentage is the day-over-day change as a
// fixed two-decimal string, or the literal "100" when no earlier positive
// NAV exists in the window.
type SchemeHistoryEntry struct {
	Date             time.Time        `json:"date"`
	Nav              *decimal.Decimal `json:"nav"`
	Percentage       string           `json:"percentage"`
	IsGrowth         bool             `json:"isGrowth"`
	IsTradingHoliday bool             `json:"isTradingHoliday"`
}

// SchemeHistory is one scheme's contiguous daily series over a requested
// window, with explicit holiday placeholders for calendar alignment.
type SchemeHistory struct {
	FundName   string               `json:"fundName"`
	SchemeCode string               `json:"schemeCode"`
	SchemeName string               `json:"schemeName"`
	Entries    []SchemeHistoryEntry `json:"entries"`
}
