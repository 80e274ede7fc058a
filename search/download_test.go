package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillcut/splitter"
	"stillcut/stats"
)

type stubSearcher struct {
	images []Image
	err    error
	calls  int
}

func (s *stubSearcher) SearchImages(ctx context.Context, query string, count int) ([]Image, error) {
	s.calls++
	return s.images, s.err
}

func imageServer(t *testing.T, contentType string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte("fake image bytes"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	server := imageServer(t, "image/jpeg")
	savePath := filepath.Join(t.TempDir(), "nested", "photo.jpg")

	downloader := NewDownloader(nil)
	require.NoError(t, downloader.Download(context.Background(), server.URL, savePath))

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestDownloadRejectsNonImages(t *testing.T) {
	server := imageServer(t, "text/html")
	savePath := filepath.Join(t.TempDir(), "photo.jpg")

	downloader := NewDownloader(nil)
	err := downloader.Download(context.Background(), server.URL, savePath)
	assert.ErrorContains(t, err, "not an image")
}

func TestDownloadRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	downloader := NewDownloader(nil)
	err := downloader.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "photo.jpg"))
	assert.ErrorContains(t, err, "status 404")
}

func TestDownloadForSplit(t *testing.T) {
	server := imageServer(t, "image/png")
	searcher := &stubSearcher{images: []Image{
		{ID: "one", URL: server.URL + "/a.png"},
		{ID: "two", URL: server.URL + "/b.png"},
		{ID: "three", URL: server.URL + "/c.png"},
	}}

	tracker := stats.NewTracker()
	downloader := NewDownloader(tracker)
	split := splitter.Split{Keywords: []string{"apple"}, SegmentIndex: 0, SplitIndex: 0}

	baseDir := t.TempDir()
	paths := downloader.DownloadForSplit(context.Background(), searcher, split,
		"Demo", 2, []string{"apple"}, baseDir)

	require.Len(t, paths, 2)
	for _, relative := range paths {
		assert.Contains(t, relative, "./Demo/")
		_, err := os.Stat(filepath.Join(baseDir, "Demo", filepath.Base(relative)))
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, searcher.calls, "first query satisfied the request")

	summary := tracker.Snapshot()
	assert.Equal(t, 2, summary.ImagesDownloaded)
	assert.Equal(t, 0, summary.ImagesFailed)
}

func TestDownloadForSplitReusesExistingFiles(t *testing.T) {
	server := imageServer(t, "image/png")
	searcher := &stubSearcher{images: []Image{{ID: "one", URL: server.URL + "/a.png"}}}

	downloader := NewDownloader(nil)
	split := splitter.Split{Keywords: []string{"apple"}, SegmentIndex: 0, SplitIndex: 0}
	baseDir := t.TempDir()

	filename := Filename(searcher.images[0], 0, 0, "apple")
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "Demo"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "Demo", filename), []byte("cached"), 0644))

	paths := downloader.DownloadForSplit(context.Background(), searcher, split,
		"Demo", 1, []string{"apple"}, baseDir)

	require.Len(t, paths, 1)
	data, err := os.ReadFile(filepath.Join(baseDir, "Demo", filename))
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data), "existing file must not be re-downloaded")
}

func TestDownloadForSplitNoKeywords(t *testing.T) {
	searcher := &stubSearcher{}
	downloader := NewDownloader(nil)

	paths := downloader.DownloadForSplit(context.Background(), searcher,
		splitter.Split{}, "Demo", 2, []string{"apple"}, t.TempDir())

	assert.Nil(t, paths)
	assert.Zero(t, searcher.calls)
}

func TestDownloadForSplitTracksFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	searcher := &stubSearcher{images: []Image{{ID: "one", URL: server.URL + "/a.png"}}}
	tracker := stats.NewTracker()
	downloader := NewDownloader(tracker)
	split := splitter.Split{Keywords: []string{"apple"}, SegmentIndex: 0, SplitIndex: 0}

	paths := downloader.DownloadForSplit(context.Background(), searcher, split,
		"Demo", 1, []string{"apple"}, t.TempDir())

	assert.Empty(t, paths)
	assert.Equal(t, 1, tracker.Snapshot().ImagesFailed)
}
