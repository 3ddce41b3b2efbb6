package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gigcompliance/anj-resolver/pkg/sheet"
	"gopkg.in/yaml.v3"
)

// ExportCSVURL derives the CSV export endpoint for one tab of a published
// Google spreadsheet from its browser URL. Scheme and host are preserved so
// mirrors (and tests) work.
func ExportCSVURL(spreadsheetURL, tabName string) (string, error) {
	u, err := url.Parse(spreadsheetURL)
	if err != nil {
		return "", fmt.Errorf("parse spreadsheet url: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	fileID := ""
	for i, seg := range segments {
		if seg == "d" && i+1 < len(segments) {
			fileID = segments[i+1]
			break
		}
	}
	if fileID == "" {
		return "", fmt.Errorf("no file id in spreadsheet url %q", spreadsheetURL)
	}
	return fmt.Sprintf("%s://%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		u.Scheme, u.Host, fileID, url.QueryEscape(tabName)), nil
}

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 2 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

// writeManifest writes a sheet manifest as YAML to dir/manifest.yaml.
func writeManifest(dir string, m *sheet.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
