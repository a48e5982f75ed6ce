package report

import "errors"

// Sentinel errors for report generation.
var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidTimestamp = errors.New("invalid worklog timestamp")
)
