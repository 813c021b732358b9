// Package source loads raw flight pages from disk or over HTTP.
package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"flight_report/internal/dom"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent mimics a desktop browser so pages are served as to a visitor
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Loader turns a location into a parsed page
type Loader interface {
	Load(ctx context.Context, location string) (*dom.Document, error)
}

// NewHTTPClient builds the client shared by page and image downloads.
// A zero timeout leaves the transport default in place.
func NewHTTPClient(userAgent string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return client
}

// FileLoader reads UTF-8 HTML files saved by the browser driver
type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(_ context.Context, path string) (*dom.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return dom.Parse(file)
}

// HTTPLoader fetches server-rendered pages with a single GET
type HTTPLoader struct {
	client *resty.Client
}

func NewHTTPLoader(client *resty.Client) *HTTPLoader {
	return &HTTPLoader{client: client}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (*dom.Document, error) {
	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
	return dom.Parse(bytes.NewReader(resp.Body()))
}

// ListHTML returns the .html files directly inside dir, sorted by name
func ListHTML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
