package request

// CreateInvestmentRequest carries a new investment record.
type CreateInvestmentRequest struct {
	SchemeCode   string `json:"schemeCode"`
	InvestorName string `json:"investorName"`
	Amount       string `json:"amount"`
	Units        string `json:"units"`
	Date         string `json:"date"`
}
