package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a recorded purchase of units in an approved scheme.
type Investment struct {
	ID           string          `json:"id"`
	SchemeCode   string          `json:"schemeCode"`
	SchemeName   string          `json:"schemeName"`
	InvestorName string          `json:"investorName"`
	Amount       decimal.Decimal `json:"amount"`
	Units        decimal.Decimal `json:"units"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"createdAt"`
}
