package web

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stillcut/config"
	"stillcut/fcp"
	"stillcut/logging"
	"stillcut/search"
	"stillcut/stats"
	"stillcut/timeline"
)

// Server wires the session store and configuration into the HTTP API.
type Server struct {
	cfg     config.Config
	log     *logging.Logger
	store   *Store
	tracker *stats.Tracker
}

// NewServer builds the web server.
func NewServer(cfg config.Config, log *logging.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		store:   NewStore(),
		tracker: stats.NewTracker(),
	}
}

// Router assembles the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/upload", s.uploadSRT)
		api.GET("/timeline/:session", s.getTimeline)
		api.POST("/search/:session/:split", s.searchImages)
		api.POST("/select/:session/:split", s.selectImages)
		api.POST("/export/:session", s.exportTimeline)
	}

	router.Static("/output", s.cfg.OutputDir)
	router.Static("/download", s.cfg.DownloadDir)

	return router
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	for _, dir := range []string{s.cfg.UploadDir, s.cfg.OutputDir, s.cfg.DownloadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	s.log.Infow("Starting web server", "addr", s.cfg.ListenAddr)
	return s.Router().Run(s.cfg.ListenAddr)
}

// uploadSRT accepts an SRT file with a video title, creates a session,
// and splits the subtitles.
func (s *Server) uploadSRT(c *gin.Context) {
	videoTitle := strings.TrimSpace(c.PostForm("video_title"))
	if videoTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video title is required"})
		return
	}
	apiKey := strings.TrimSpace(c.PostForm("brave_api_key"))

	file, err := c.FormFile("srt_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No SRT file uploaded"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".srt") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an SRT file"})
		return
	}

	session := s.store.Create()

	filePath := filepath.Join(s.cfg.UploadDir, session.ID+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		s.store.Remove(session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if apiKey != "" {
		session.Searcher = search.NewClient(apiKey, time.Duration(s.cfg.RateLimitDelay))
	} else {
		session.Searcher = search.NewBrowserSearcher()
	}

	segmentsCount, splitsCount, err := session.ProcessSRT(filePath, videoTitle)
	if err != nil {
		s.store.Remove(session.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.tracker.SetSegmentsCount(segmentsCount)
	s.tracker.SetSplitsCount(splitsCount)
	s.log.Infow("Processed SRT upload",
		"session", session.ID, "segments", segmentsCount, "splits", splitsCount)

	c.JSON(http.StatusOK, gin.H{
		"session_id":     session.ID,
		"video_title":    videoTitle,
		"segments_count": segmentsCount,
		"splits_count":   splitsCount,
		"message":        fmt.Sprintf("Successfully processed %d segments into %d splits", segmentsCount, splitsCount),
	})
}

// getTimeline lists the session's splits with their selection state.
func (s *Server) getTimeline(c *gin.Context) {
	session, err := s.store.Get(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	entries := make([]gin.H, 0, len(session.Splits))
	for i, split := range session.Splits {
		_, hasResults := session.SearchResults[i]
		entries = append(entries, gin.H{
			"index":                 i,
			"start_time":            split.Start,
			"end_time":              split.End,
			"text":                  split.Text,
			"keywords":              split.Keywords,
			"selected_images_count": len(session.Selected[i]),
			"has_search_results":    hasResults,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":  session.ID,
		"video_title": session.VideoTitle,
		"timeline":    entries,
	})
}

type searchRequest struct {
	CustomKeywords []string `json:"custom_keywords"`
}

// searchImages runs an image search for one split, using custom keywords
// when the client provides them.
func (s *Server) searchImages(c *gin.Context) {
	session, err := s.store.Get(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	splitIndex, err := strconv.Atoi(c.Param("split"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Split index out of range"})
		return
	}

	var req searchRequest
	_ = c.ShouldBindJSON(&req)

	// Hold the lock only for session state; the search itself runs
	// unlocked.
	session.mu.Lock()
	if splitIndex < 0 || splitIndex >= len(session.Splits) {
		session.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Split index out of range"})
		return
	}
	keywords := req.CustomKeywords
	if len(keywords) == 0 {
		keywords = session.Splits[splitIndex].Keywords
	}
	session.mu.Unlock()

	query := search.CombineKeywords(keywords)

	s.log.Infow("Searching images", "session", session.ID, "split", splitIndex, "query", query)

	results, err := session.Searcher.SearchImages(c.Request.Context(), query, 12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session.mu.Lock()
	session.SearchResults[splitIndex] = results
	session.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"split_index": splitIndex,
		"query":       query,
		"results":     results,
		"count":       len(results),
	})
}

type selectRequest struct {
	SelectedImageIDs []string `json:"selected_image_ids"`
}

// selectImages records which of a split's search results the user picked.
func (s *Server) selectImages(c *gin.Context) {
	session, err := s.store.Get(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	splitIndex, err := strconv.Atoi(c.Param("split"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid split index"})
		return
	}

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	results, exists := session.SearchResults[splitIndex]
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No search results found for this split"})
		return
	}

	wanted := make(map[string]bool, len(req.SelectedImageIDs))
	for _, id := range req.SelectedImageIDs {
		wanted[id] = true
	}

	var selected []search.Image
	for _, result := range results {
		if wanted[result.ID] {
			selected = append(selected, result)
		}
	}
	session.Selected[splitIndex] = selected

	c.JSON(http.StatusOK, gin.H{
		"split_index":     splitIndex,
		"selected_count":  len(selected),
		"selected_images": selected,
	})
}

type exportRequest struct {
	PersistentSelections map[string][]search.Image `json:"persistent_selections"`
}

// exportTimeline downloads the selected images, writes the JSON timeline,
// and generates the FCPXML document.
func (s *Server) exportTimeline(c *gin.Context) {
	session, err := s.store.Get(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req exportRequest
	_ = c.ShouldBindJSON(&req)

	session.mu.Lock()
	defer session.mu.Unlock()

	outputDir := filepath.Join(s.cfg.OutputDir, session.ID, session.VideoTitle)
	downloadDir := filepath.Join(s.cfg.DownloadDir, session.VideoTitle)
	for _, dir := range []string{outputDir, downloadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	downloader := search.NewDownloader(s.tracker)
	entries := make([]timeline.Entry, 0, len(session.Splits))
	downloadedCount := 0

	for i, split := range session.Splits {
		selected := session.Selected[i]
		if persisted, exists := req.PersistentSelections[strconv.Itoa(i)]; exists {
			selected = persisted
		}

		imagePaths := []string{}
		for _, image := range selected {
			query := search.CombineKeywords(firstN(split.Keywords, 2))
			filename := search.Filename(image, split.SegmentIndex, split.SplitIndex, query)
			savePath := filepath.Join(downloadDir, filename)

			downloadURL := image.FullURL
			if downloadURL == "" {
				downloadURL = image.URL
			}

			if err := downloader.Download(c.Request.Context(), downloadURL, savePath); err != nil {
				s.log.Warnw("Failed to download image", "file", filename, "error", err)
				continue
			}

			absolutePath, err := filepath.Abs(savePath)
			if err != nil {
				absolutePath = savePath
			}
			imagePaths = append(imagePaths, absolutePath)
			downloadedCount++
		}

		entries = append(entries, timeline.Entry{
			Start:  split.Start,
			End:    split.End,
			Images: imagePaths,
		})
	}

	timelineFile := filepath.Join(s.cfg.DownloadDir, session.VideoTitle+"_timeline.json")
	if err := timeline.Save(entries, timelineFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fcpxmlFile := filepath.Join(s.cfg.DownloadDir, session.VideoTitle+"_timeline.fcpxml")
	if err := fcp.WriteTimeline(entries, session.VideoTitle, s.cfg.FrameRate, fcpxmlFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.log.Infow("Exported timeline",
		"session", session.ID, "entries", len(entries), "images", downloadedCount)

	c.JSON(http.StatusOK, gin.H{
		"timeline_file":     filepath.Base(timelineFile),
		"fcpxml_file":       filepath.Base(fcpxmlFile),
		"images_downloaded": downloadedCount,
		"total_entries":     len(entries),
	})
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
