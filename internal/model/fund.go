package model

import "time"

// Fund represents a mutual-fund house (AMC) from the database.
// The ID is derived deterministically from the fund name during ingestion.
type Fund struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Approved   bool      `json:"approved"`
	Visible    bool      `json:"visible"`
	ApprovedBy string    `json:"approvedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Scheme represents an investable product offered by a fund.
// The code is the natural key assigned by the NAV feed and is never regenerated.
type Scheme struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	FundID    string    `json:"fundId"`
	Approved  bool      `json:"approved"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
