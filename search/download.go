package search

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

	"stillcut/splitter"
	"stillcut/stats"
)

// Downloader fetches search-result images to disk and reports outcomes to
// the statistics tracker.
type Downloader struct {
	HTTPClient *http.Client
	Tracker    *stats.Tracker
}

// NewDownloader builds a downloader with a 10-second request timeout.
func NewDownloader(tracker *stats.Tracker) *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Tracker:    tracker,
	}
}

// Download fetches an image URL to savePath, rejecting responses that are
// not images.
func (d *Downloader) Download(ctx context.Context, imageURL, savePath string) error {
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("not an image: %s", contentType)
	}

	file, err := os.Create(savePath)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(savePath)
		return fmt.Errorf("failed to save image: %w", err)
	}

	return nil
}

// DownloadForSplit tries each search query in turn until count images are
// on disk, returning timeline-relative paths. Existing files are reused.
func (d *Downloader) DownloadForSplit(ctx context.Context, searcher Searcher, split splitter.Split, videoTitle string, count int, queries []string, baseDir string) []string {
	if len(split.Keywords) == 0 {
		return nil
	}

	var downloaded []string

	for _, query := range queries {
		if len(downloaded) >= count {
			break
		}

		results, err := searcher.SearchImages(ctx, query, count*2)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: search %q failed: %v\n", query, err)
			continue
		}

		for _, image := range results {
			if len(downloaded) >= count {
				break
			}

			filename := Filename(image, split.SegmentIndex, split.SplitIndex, query)
			savePath := filepath.Join(baseDir, videoTitle, filename)
			relativePath := "./" + videoTitle + "/" + filename

			if _, err := os.Stat(savePath); err == nil {
				downloaded = append(downloaded, relativePath)
				continue
			}

			downloadURL := image.FullURL
			if downloadURL == "" {
				downloadURL = image.URL
			}

			if err := d.Download(ctx, downloadURL, savePath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to download %s: %v\n", filename, err)
				if d.Tracker != nil {
					d.Tracker.AddFailed(1)
				}
				continue
			}

			downloaded = append(downloaded, relativePath)
			if d.Tracker != nil {
				d.Tracker.AddDownloaded(1)
			}
		}
	}

	return downloaded
}

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Filename builds a deterministic name for a downloaded image from its
// split identity, the query used, and the image id.
func Filename(image Image, segmentIndex, splitIndex int, query string) string {
	var clean strings.Builder
	for _, r := range query {
		if clean.Len() >= 20 {
			break
		}
		if r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			clean.WriteRune(r)
		}
	}

	ext := ".jpg"
	if parsed, err := url.Parse(image.URL); err == nil {
		if candidate := strings.ToLower(filepath.Ext(parsed.Path)); allowedExtensions[candidate] {
			ext = candidate
		}
	}

	return fmt.Sprintf("seg%03d_split%d_%s_%s%s", segmentIndex, splitIndex, clean.String(), image.ID, ext)
}
