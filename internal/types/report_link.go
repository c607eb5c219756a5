// Package types provides type definitions for structured data used throughout the customs report pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ReportLink is one anchor scraped from the report index page.
type ReportLink struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Candidate is a report link whose title passed the FTS and period filters.
type Candidate struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Month    string `json:"month"`    // last whitespace-delimited token of Title
	Period   string `json:"period"`   // period token found in Title, upper case
	Position int    `json:"position"` // index among surviving candidates
}
