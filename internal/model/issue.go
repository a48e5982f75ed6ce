// Package model defines domain entities for the application.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SearchResult is the body returned by the Jira issue search endpoint.
// Only the fields the report needs are decoded.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue is a tracked unit of work with its embedded worklogs.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the issue fields requested from Jira.
// Pointer fields are nil when Jira returns null or omits them.
type IssueFields struct {
	Summary  string        `json:"summary"`
	Assignee *User         `json:"assignee"`
	Project  *Project      `json:"project"`
	Worklog  *WorklogField `json:"worklog"`
}

// User is a Jira user reference.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Project is a Jira project reference.
type Project struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// WorklogField is the embedded worklog page of an issue.
type WorklogField struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Worklogs   []Worklog `json:"worklogs"`
}

// Worklog is a single time-logged record attached to an issue.
type Worklog struct {
	ID               string      `json:"id,omitempty"`
	Author           *User       `json:"author"`
	UpdateAuthor     *User       `json:"updateAuthor"`
	Comment          CommentText `json:"comment"`
	Started          string      `json:"started"`
	TimeSpentSeconds int64       `json:"timeSpentSeconds"`
}

// Entries returns the issue worklogs, or nil when the field is absent.
func (f IssueFields) Entries() []Worklog {
	if f.Worklog == nil {
		return nil
	}
	return f.Worklog.Worklogs
}

// CommentText is a worklog comment flattened to plain text.
// API v2 sends a string; API v3 sends an Atlassian Document Format tree.
type CommentText string

// UnmarshalJSON accepts a JSON string, null, or an ADF document.
func (c *CommentText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CommentText(s)
		return nil
	}

	var doc adfNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var sb strings.Builder
	doc.writeText(&sb)
	*c = CommentText(strings.TrimSpace(sb.String()))
	return nil
}

// adfNode is the subset of an ADF node needed to extract text.
type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

func (n adfNode) writeText(sb *strings.Builder) {
	switch n.Type {
	case "text":
		sb.WriteString(n.Text)
		return
	case "hardBreak":
		sb.WriteString("\n")
		return
	}

	for _, child := range n.Content {
		child.writeText(sb)
	}

	if n.Type == "paragraph" || n.Type == "heading" || n.Type == "listItem" {
		sb.WriteString("\n")
	}
}
