package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrSchemeNotFound indicates that a scheme with the given code does not exist.
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrNavRecordNotFound indicates no NAV record for a scheme and date combination.
	ErrNavRecordNotFound = errors.New("nav record not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrFeedConfigNotFound indicates the feed configuration has not been set up.
	ErrFeedConfigNotFound = errors.New("feed configuration not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrSchemeNotApproved indicates an investment was attempted against a
	// scheme that has not been approved for visibility.
	ErrSchemeNotApproved = errors.New("scheme is not approved")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyFeed indicates an import was requested with empty feed content.
	ErrEmptyFeed = errors.New("feed content is empty")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveFunds       = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveSchemes     = errors.New("failed to retrieve schemes")
	ErrFailedToRetrieveHistory     = errors.New("failed to retrieve scheme history")
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")
	ErrFailedToImport              = errors.New("failed to import feed data")
	ErrFailedToSetApproval         = errors.New("failed to set approval")
)
