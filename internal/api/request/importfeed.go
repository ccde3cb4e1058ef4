package request

// ImportFeedRequest carries raw feed text for a manual import run.
type ImportFeedRequest struct {
	RawText string `json:"rawText"`
}

// FeedConfigRequest carries feed download settings.
type FeedConfigRequest struct {
	FeedURL   string `json:"feedUrl"`
	AuthToken string `json:"authToken"`
	Timezone  string `json:"timezone"`
	Schedule  string `json:"schedule"`
}

// MarketHolidayRequest carries one market holiday to record.
type MarketHolidayRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}
