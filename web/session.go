// Package web exposes the interactive timeline builder over HTTP: upload
// an SRT file, search and pick images per split, export the timeline.
package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"stillcut/search"
	"stillcut/splitter"
	"stillcut/srt"
	"stillcut/timeline"
)

// Session holds one user's in-progress timeline build.
type Session struct {
	mu sync.Mutex

	ID         string
	VideoTitle string
	SRTPath    string
	Splits     []splitter.Split

	// Keyed by flat split index across the whole timeline.
	SearchResults map[int][]search.Image
	Selected      map[int][]search.Image

	Searcher  search.Searcher
	CreatedAt time.Time
}

// ProcessSRT parses the uploaded subtitle file and builds the session's
// split list, returning the segment and split counts.
func (s *Session) ProcessSRT(filePath, videoTitle string) (int, int, error) {
	segments, err := srt.ParseFile(filePath)
	if err != nil {
		return 0, 0, err
	}

	splits, err := timeline.SplitSegments(segments)
	if err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.SRTPath = filePath
	s.VideoTitle = videoTitle
	s.Splits = splits
	s.SearchResults = make(map[int][]search.Image)
	s.Selected = make(map[int][]search.Image)

	return len(segments), len(splits), nil
}

// Store owns all active sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session with a fresh id.
func (st *Store) Create() *Session {
	session := &Session{
		ID:            uuid.NewString(),
		SearchResults: make(map[int][]search.Image),
		Selected:      make(map[int][]search.Image),
		CreatedAt:     time.Now(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.ID] = session
	return session
}

// Get returns the session for an id.
func (st *Store) Get(sessionID string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, exists := st.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return session, nil
}

// Remove deletes a session.
func (st *Store) Remove(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

// CleanupOlderThan evicts sessions created before the cutoff and returns
// how many were removed.
func (st *Store) CleanupOlderThan(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, session := range st.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
