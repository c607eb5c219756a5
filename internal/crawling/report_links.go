package crawling

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/customs-fts/internal/fetch"
	"github.com/jonathan/customs-fts/internal/types"
)

const (
	listTag   = "ul"
	anchorTag = "a"
)

// ExtractReportLinks returns one ReportLink per list item of the element matched by
// selector, in document order. An empty selector uses the portal default for baseURL.
// Relative hrefs are resolved against baseURL when it is set.
func ExtractReportLinks(htmlContent, selector, baseURL string) ([]types.ReportLink, error) {
	selector = fetch.SelectorFor(baseURL, selector)

	var base *url.URL
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, &LinkExtractionError{
				Message: "failed to parse base URL",
				Cause:   err,
			}
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return nil, &LinkExtractionError{
				Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
			}
		}
		base = parsed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	list := doc.Find(selector).First()
	if list.Length() == 0 {
		return nil, &TagNotFoundError{Tag: listTag}
	}

	links := make([]types.ReportLink, 0)
	missingAnchor := false

	list.Find("li").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		anchor := item.Find("a[href]").First()
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		if anchor.Length() == 0 || href == "" {
			missingAnchor = true
			return false
		}

		if base != nil {
			href = fetch.ResolveURL(base, href)
		}

		links = append(links, types.ReportLink{
			URL:   href,
			Title: strings.Join(strings.Fields(anchor.Text()), " "),
		})
		return true
	})

	if missingAnchor {
		return nil, &TagNotFoundError{Tag: anchorTag}
	}

	return links, nil
}
