package validation

import (
	"strings"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/api/request"
	"github.com/shopspring/decimal"
)

// ValidateCreateInvestment checks a new-investment request.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.SchemeCode) == "" {
		errors["schemeCode"] = "scheme code is required"
	}

	if strings.TrimSpace(req.InvestorName) == "" {
		errors["investorName"] = "investor name is required"
	} else if len(req.InvestorName) > 255 {
		errors["investorName"] = "investor name must be 255 characters or less"
	}

	if strings.TrimSpace(req.Amount) == "" {
		errors["amount"] = "amount is required"
	} else if amount, err := decimal.NewFromString(req.Amount); err != nil {
		errors["amount"] = "amount must be a decimal number"
	} else if amount.IsNegative() {
		errors["amount"] = "amount cannot be negative"
	}

	if strings.TrimSpace(req.Units) == "" {
		errors["units"] = "units is required"
	} else if units, err := decimal.NewFromString(req.Units); err != nil {
		errors["units"] = "units must be a decimal number"
	} else if units.IsNegative() {
		errors["units"] = "units cannot be negative"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := ParseTime(req.Date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
