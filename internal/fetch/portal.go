// Package fetch - portal.go identifies the report portal and holds its structural selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Portal represents a known report publishing site.
type Portal string

const (
	// PortalCustomsNepal is the Department of Customs, Nepal portal
	PortalCustomsNepal Portal = "customs.gov.np"
	// PortalUnknown is an unrecognized site
	PortalUnknown Portal = "unknown"
)

// DefaultIndexURL is the page listing the current fiscal year's FTS reports.
const DefaultIndexURL = "https://www.customs.gov.np/page/fts-fy-208081"

// customsReportListSelector locates the report list on customs.gov.np content pages.
// It breaks whenever the portal's layout changes; keep it in this file only.
const customsReportListSelector = "#container > div > div > div > div.style1.col-xs-12.col-sm-12.col-md-9.col-lg-9 > ul"

// genericReportListSelector is used for sites without a dedicated selector.
const genericReportListSelector = "ul"

// DetectPortal identifies the portal from a URL.
func DetectPortal(urlStr string) Portal {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PortalUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "customs.gov.np" || strings.HasSuffix(host, ".customs.gov.np") {
		return PortalCustomsNepal
	}

	return PortalUnknown
}

// ReportListSelector returns the selector of the element listing report links.
func ReportListSelector(portal Portal) string {
	switch portal {
	case PortalCustomsNepal:
		return customsReportListSelector
	default:
		return genericReportListSelector
	}
}

// SelectorFor returns override when set, otherwise the selector for the portal of indexURL.
func SelectorFor(indexURL, override string) string {
	if override != "" {
		return override
	}
	return ReportListSelector(DetectPortal(indexURL))
}
