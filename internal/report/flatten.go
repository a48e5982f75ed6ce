// Package report turns Jira issues into worklog report rows and spreadsheets.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/jirareport/worklog-report/internal/model"
)

// worklogLayouts are the timestamp formats accepted for worklog "started".
// Jira emits the first one.
var worklogLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	model.DayLayout,
}

// ParseWorklogTime parses a Jira worklog timestamp.
func ParseWorklogTime(s string) (time.Time, error) {
	for _, layout := range worklogLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Flatten expands every issue's worklogs into rows and keeps the ones whose
// start instant falls inside r. It returns the rows in input order and the
// number of entries skipped because their timestamp could not be parsed.
func Flatten(issues []model.Issue, r model.DateRange) ([]model.ReportRow, int) {
	rows := make([]model.ReportRow, 0)
	skipped := 0

	for _, issue := range issues {
		f := issue.Fields

		title := orDefault(f.Summary, model.NoTitle)
		assignee := model.Unassigned
		if f.Assignee != nil {
			assignee = orDefault(f.Assignee.DisplayName, model.Unassigned)
		}
		projectName, projectID := model.NoProject, model.NoProjectID
		if f.Project != nil {
			projectName = orDefault(f.Project.Name, model.NoProject)
			projectID = orDefault(f.Project.Key, model.NoProjectID)
		}
		issueID := orDefault(issue.Key, model.NoIssueID)

		for _, wl := range f.Entries() {
			started, err := ParseWorklogTime(wl.Started)
			if err != nil {
				skipped++
				continue
			}
			if !r.Contains(started) {
				continue
			}

			updatedBy := assignee
			if wl.UpdateAuthor != nil && wl.UpdateAuthor.DisplayName != "" {
				updatedBy = wl.UpdateAuthor.DisplayName
			}

			y, m, d := started.UTC().Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			rows = append(rows, model.ReportRow{
				Date:        day.Format(model.DayLayout),
				Assignee:    assignee,
				ProjectName: projectName,
				ProjectID:   projectID,
				IssueID:     issueID,
				UpdatedBy:   updatedBy,
				Issue:       title,
				Comment:     orDefault(string(wl.Comment), model.NoComment),
				Hours:       FormatHours(wl.TimeSpentSeconds),
				Day:         day,
			})
		}
	}

	return rows, skipped
}

// SortRows orders rows by day ascending. Rows on the same day keep their
// relative order.
func SortRows(rows []model.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Day.Before(rows[j].Day)
	})
}

// FormatHours renders seconds as hours with exactly two decimals.
// Rounding is half away from zero on the exact ratio seconds/3600.
func FormatHours(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	// hundredths of an hour = seconds/36, rounded half up
	hundredths := (seconds + 18) / 36
	return fmt.Sprintf("%s%d.%02d", sign, hundredths/100, hundredths%100)
}

// ProjectKeys returns the distinct project keys of rows in first-seen order.
func ProjectKeys(rows []model.ReportRow) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, row := range rows {
		if row.ProjectID == model.NoProjectID || seen[row.ProjectID] {
			continue
		}
		seen[row.ProjectID] = true
		keys = append(keys, row.ProjectID)
	}
	return keys
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
