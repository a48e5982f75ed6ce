package model

import "time"

// Fallback texts used when upstream fields are missing.
const (
	NoTitle     = "No title available"
	Unassigned  = "Unassigned"
	NoProject   = "No project name"
	NoProjectID = "No project ID"
	NoIssueID   = "No issue ID"
	NoComment   = "No comment"
)

// DayLayout is the day-granularity date format used in report rows.
const DayLayout = "2006-01-02"

// Columns is the ordered column schema of the worklog report.
// It is fixed so the header row exists even when there are no rows.
var Columns = []string{
	"Date",
	"Assignee",
	"ProjectName",
	"ProjectID",
	"IssueID",
	"UpdatedBy",
	"Issue",
	"Comment",
	"Hours",
}

// DateRange is an inclusive [Start, End] filter on worklog start instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ReportRequest is a caller's request for a report.
// StartDate and EndDate are kept verbatim for the file name.
type ReportRequest struct {
	StartDate string
	EndDate   string
	Range     DateRange
	RequestID string
	// KeyPrefix identifies the API key that asked for the report, if any.
	KeyPrefix string
}

// ReportRow is one flattened, display-ready worklog record.
type ReportRow struct {
	Date        string
	Assignee    string
	ProjectName string
	ProjectID   string
	IssueID     string
	UpdatedBy   string
	Issue       string
	Comment     string
	Hours       string

	// Day is Date parsed back to a UTC midnight instant; rows sort on it.
	Day time.Time
}

// Values returns the row cells in Columns order.
func (r ReportRow) Values() []string {
	return []string{
		r.Date,
		r.Assignee,
		r.ProjectName,
		r.ProjectID,
		r.IssueID,
		r.UpdatedBy,
		r.Issue,
		r.Comment,
		r.Hours,
	}
}
