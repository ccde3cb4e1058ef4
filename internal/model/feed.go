package model

import "time"

// FeedConfig holds the AMFI feed download settings. The auth token is stored
// fernet-encrypted; AuthToken on this struct is always the plaintext.
type FeedConfig struct {
	ID             string     `json:"id"`
	FeedURL        string     `json:"feedUrl"`
	AuthToken      string     `json:"-"`
	Timezone       string     `json:"timezone"`
	Schedule       string     `json:"schedule"`
	LastImportDate *time.Time `json:"lastImportDate"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// MarketHoliday is a date on which the market is closed and no NAV is
// published. Used to derive the trading-day calendar.
type MarketHoliday struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// ImportSummary reports what one feed import run did. Skipped lines are the
// malformed data lines dropped by the best-effort parsing policy.
type ImportSummary struct {
	FundsCreated    int `json:"fundsCreated"`
	SchemesCreated  int `json:"schemesCreated"`
	RecordsInserted int `json:"recordsInserted"`
	LinesSkipped    int `json:"linesSkipped"`
}
