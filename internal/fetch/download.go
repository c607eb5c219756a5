package fetch

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ScratchPath returns a fresh artifact path under dir (the OS temp dir when empty).
func ScratchPath(dir string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "customs-report-"+uuid.NewString()+".xlsx")
}

// Download GETs urlStr and writes the body to dest, replacing any previous file.
// dest is left untouched when the request fails.
func Download(ctx context.Context, urlStr, dest string, opts *Options) (string, error) {
	resp, err := get(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to create download directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to create download file", Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to write download file", Cause: err}
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to move download into place", Cause: err}
	}

	return dest, nil
}
