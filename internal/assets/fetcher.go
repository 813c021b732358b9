// Package assets downloads flight images into a flat on-disk cache.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads images into cacheDir, keyed by the URL's file name.
// Two different URLs ending in the same file name share one cache entry.
type Fetcher struct {
	client   *resty.Client
	cacheDir string
}

// NewFetcher creates the cache directory if needed
func NewFetcher(client *resty.Client, cacheDir string) (*Fetcher, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", cacheDir, err)
	}
	return &Fetcher{client: client, cacheDir: cacheDir}, nil
}

// Dir returns the cache directory
func (f *Fetcher) Dir() string {
	return f.cacheDir
}

// Fetch returns the local path of the image at imageURL, downloading it when
// it is not cached yet. It returns "" when the image cannot be obtained.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) string {
	name, err := CacheName(imageURL)
	if err != nil {
		slog.Error("Cannot derive image file name", "url", imageURL, "error", err)
		return ""
	}
	dest := filepath.Join(f.cacheDir, name)

	if _, err := os.Stat(dest); err == nil {
		slog.Debug("Image already cached", "file", name)
		return dest
	}

	if err := f.download(ctx, imageURL, dest); err != nil {
		slog.Error("Failed to download image", "url", imageURL, "error", err)
		return ""
	}
	slog.Info("Downloaded image", "file", name)
	return dest
}

func (f *Fetcher) download(ctx context.Context, imageURL, dest string) error {
	resp, err := f.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	tmp, err := os.CreateTemp(f.cacheDir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(resp.Body()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move image into cache: %w", err)
	}
	return nil
}

// CacheName derives the cache file name from the last segment of the URL path
func CacheName(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", errors.New("URL has no file name")
	}
	return name, nil
}
