// Package tabular reads the trade balance worksheet and turns it into validated records.
package tabular

import (
	"fmt"
	"strings"
)

// maxListedIssues caps how many issues SchemaValidationError prints.
const maxListedIssues = 5

// WorksheetNotFoundError is returned when the workbook lacks the expected sheet.
type WorksheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *WorksheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found (available: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

// Issue is one failed check. Row is the sheet row number; 0 means the header.
type Issue struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Row == 0 {
		return fmt.Sprintf("header %s: %s", i.Column, i.Message)
	}
	return fmt.Sprintf("row %d %s=%q: %s", i.Row, i.Column, i.Value, i.Message)
}

// SchemaValidationError lists every issue found in a worksheet. No rows are
// emitted when it is returned.
type SchemaValidationError struct {
	Sheet  string
	Issues []Issue
}

func (e *SchemaValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema validation failed for sheet %q: %d issue(s) in column(s) %s",
		e.Sheet, len(e.Issues), strings.Join(e.Columns(), ", "))
	for i, issue := range e.Issues {
		if i == maxListedIssues {
			fmt.Fprintf(&b, "; and %d more", len(e.Issues)-maxListedIssues)
			break
		}
		b.WriteString("; ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// Columns returns the offending columns in first-seen order.
func (e *SchemaValidationError) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, issue := range e.Issues {
		if !seen[issue.Column] {
			seen[issue.Column] = true
			cols = append(cols, issue.Column)
		}
	}
	return cols
}

// Rows returns the offending sheet rows in first-seen order.
func (e *SchemaValidationError) Rows() []int {
	seen := make(map[int]bool)
	var rows []int
	for _, issue := range e.Issues {
		if !seen[issue.Row] {
			seen[issue.Row] = true
			rows = append(rows, issue.Row)
		}
	}
	return rows
}

// ReadError represents a failure to open or read the workbook
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
