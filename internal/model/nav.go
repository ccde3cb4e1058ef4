package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NavRecord is one historical NAV observation for a scheme on a date.
// The table is append-only: re-ingesting a feed produces duplicate rows for
// the same (scheme, date); only the visibility flag is ever updated, by the
// approval cascade.
type NavRecord struct {
	ID         string          `json:"id"`
	FundID     string          `json:"fundId"`
	FundName   string          `json:"fundName"`
	SchemeCode string          `json:"schemeCode"`
	SchemeName string          `json:"schemeName"`
	Nav        decimal.Decimal `json:"nav"`
	Date       time.Time       `json:"date"`
	Visible    bool            `json:"visible"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SchemeDetail is the flattened per-(scheme, date) projection consumed by the
// history builder and the series transformer. Derived from nav_record at
// query time, never stored.
type SchemeDetail struct {
	FundCode   string          `json:"fundCode"`
	FundName   string          `json:"fundName"`
	SchemeCode string          `json:"schemeCode"`
	SchemeName string          `json:"schemeName"`
	Visible    bool            `json:"visible"`
	Date       time.Time       `json:"date"`
	Nav        decimal.Decimal `json:"nav"`
}
