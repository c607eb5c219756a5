// Package fetch provides the HTTP GET used for the report index page and the
// report artifact, plus the portal-specific selectors for the index page.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CustomsFTS/1.0)"

// Result holds the body of a successful or failed GET.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents a failed GET. StatusCode is zero when no response was received.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// VerifyServerCert=false skips TLS certificate verification.
	VerifyServerCert bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
		VerifyServerCert: true,
	}
}

func newClient(opts *Options) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.VerifyServerCert {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via verify_server_cert=false
	}
	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}
}

// get issues the request and rejects non-2xx responses. The caller closes the body
// of a returned response; on error the body is already closed.
func get(ctx context.Context, urlStr string, opts *Options) (*http.Response, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := newClient(opts).Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &Error{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return resp, nil
}

// URL retrieves the body of urlStr as text.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	resp, err := get(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Cause:      err,
		}
	}

	return &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// ResolveURL resolves href against base. Unparseable hrefs are returned unchanged.
func ResolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// HasElement reports whether selector matches anything in html.
func HasElement(html, selector string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find(selector).Length() > 0
}
