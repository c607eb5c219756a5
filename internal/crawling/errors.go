// Package crawling extracts report links from the report index page.
package crawling

import "fmt"

// TagNotFoundError is returned when the index page lacks an expected element.
type TagNotFoundError struct {
	Tag string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("could not find tag with name %q", e.Tag)
}

// LinkExtractionError represents a failure in extracting links from HTML
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link extraction error: %s", e.Message)
}

func (e *LinkExtractionError) Unwrap() error {
	return e.Cause
}
