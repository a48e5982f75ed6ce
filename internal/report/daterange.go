package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jirareport/worklog-report/internal/model"
)

// requestLayouts are the accepted formats for startDate/endDate.
// Values without a zone are read as UTC.
var requestLayouts = []string{
	model.DayLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
}

// ParseDateRange validates the caller's start and end strings.
func ParseDateRange(startDate, endDate string) (model.DateRange, error) {
	start, err := parseRequestDate(startDate)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: startDate: %v", ErrInvalidDateRange, err)
	}
	end, err := parseRequestDate(endDate)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: endDate: %v", ErrInvalidDateRange, err)
	}
	if end.Before(start) {
		return model.DateRange{}, fmt.Errorf("%w: endDate is before startDate", ErrInvalidDateRange)
	}
	return model.DateRange{Start: start, End: end}, nil
}

// NewRequest builds a ReportRequest from raw caller input.
func NewRequest(startDate, endDate, requestID string) (model.ReportRequest, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	r, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return model.ReportRequest{}, err
	}

	return model.ReportRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Range:     r,
		RequestID: requestID,
	}, nil
}

func parseRequestDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("value is required")
	}
	for _, layout := range requestLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q", s)
}
