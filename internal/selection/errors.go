// Package selection picks the report to download from the scraped report links.
package selection

import (
	"errors"
	"fmt"
)

// ErrReportLinkNotFound is returned when no link passes the report filters.
var ErrReportLinkNotFound = errors.New("report link not found")

// IndexError is returned when fewer candidates survived filtering than the
// positional rule needs. It matches ErrReportLinkNotFound when none survived.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("selection index %d out of range: %d candidate(s) survived filtering", e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	if e.Count == 0 {
		return ErrReportLinkNotFound
	}
	return nil
}

// Error represents an error that occurs during report selection
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
