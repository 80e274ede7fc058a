// Package stats counts what happened during a timeline generation run.
package stats

import "sync"

// Tracker accumulates generation counters. Safe for concurrent use by
// parallel download workers.
type Tracker struct {
	mu               sync.Mutex
	totalSegments    int
	totalSplits      int
	imagesDownloaded int
	imagesFailed     int
}

// Summary is a point-in-time snapshot of the counters.
type Summary struct {
	TotalSegments    int     `json:"total_segments"`
	TotalSplits      int     `json:"total_splits"`
	ImagesDownloaded int     `json:"images_downloaded"`
	ImagesFailed     int     `json:"images_failed"`
	SuccessRate      float64 `json:"success_rate"`
}

// NewTracker creates a zeroed tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetSegmentsCount records the number of parsed subtitle segments.
func (t *Tracker) SetSegmentsCount(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalSegments = count
}

// SetSplitsCount records the number of generated text splits.
func (t *Tracker) SetSplitsCount(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalSplits = count
}

// AddDownloaded increments the downloaded image counter.
func (t *Tracker) AddDownloaded(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.imagesDownloaded += count
}

// AddFailed increments the failed download counter.
func (t *Tracker) AddFailed(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.imagesFailed += count
}

// Snapshot returns the current counters with the derived success rate as
// a percentage.
func (t *Tracker) Snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	rate := 0.0
	if attempted := t.imagesDownloaded + t.imagesFailed; attempted > 0 {
		rate = float64(t.imagesDownloaded) / float64(attempted) * 100
	}

	return Summary{
		TotalSegments:    t.totalSegments,
		TotalSplits:      t.totalSplits,
		ImagesDownloaded: t.imagesDownloaded,
		ImagesFailed:     t.imagesFailed,
		SuccessRate:      rate,
	}
}

// Reset zeroes all counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalSegments = 0
	t.totalSplits = 0
	t.imagesDownloaded = 0
	t.imagesFailed = 0
}
