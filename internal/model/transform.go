package model

import "time"

// TransformedScheme is the compact three-point movement view of a scheme:
// the three most recent NAV observations with day-over-day percent changes.
// Percent strings carry at most two decimal digits and a trailing "%".
type TransformedScheme struct {
	SchemeName         string    `json:"schemeName"`
	FundName           string    `json:"fundName"`
	BeforeDate         time.Time `json:"beforeDate"`
	PreviousDate       time.Time `json:"previousDate"`
	TodayDate          time.Time `json:"todayDate"`
	BeforeNav          float64   `json:"beforeNav"`
	PreviousNav        float64   `json:"previousNav"`
	TodayNav           float64   `json:"todayNav"`
	PreviousPercent    string    `json:"previousPercent"`
	TodayPercent       string    `json:"todayPercent"`
	IsPreviousIncrease bool      `json:"isPreviousIncrease"`
	IsTodayIncrease    bool      `json:"isTodayIncrease"`
}

// TransformResult aggregates the per-scheme movement views.
// LatestDate is the max "today" date and EarliestDate the min "previous"
// date across qualifying schemes; both are nil when no scheme has at least
// three observations.
type TransformResult struct {
	Schemes      []TransformedScheme `json:"schemes"`
	Count        int                 `json:"count"`
	LatestDate   *time.Time          `json:"latestDate"`
	EarliestDate *time.Time          `json:"earliestDate"`
}
