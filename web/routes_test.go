package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stillcut/config"
	"stillcut/logging"
	"stillcut/search"
	"stillcut/splitter"
)

type fixedSearcher struct {
	images []search.Image
}

func (f *fixedSearcher) SearchImages(ctx context.Context, query string, count int) ([]search.Image, error) {
	return f.images, nil
}

func testServer(t *testing.T) (*Server, *Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := NewServer(config.Default(), logging.NewLogger(false))
	session := server.store.Create()
	session.Searcher = &fixedSearcher{images: []search.Image{{ID: "img1", URL: "https://example.com/a.jpg"}}}
	session.Splits = []splitter.Split{
		{Text: "eat an apple", Start: "00:00:00,000", End: "00:00:03,000", Keywords: []string{"eat", "apple"}},
		{Text: "every day", Start: "00:00:03,000", End: "00:00:06,000", Keywords: []string{"every"}},
	}
	return server, session
}

func TestSearchImagesEndpoint(t *testing.T) {
	server, session := testServer(t)
	router := server.Router()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search/"+session.ID+"/0", nil)
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"query":"eat apple"`)

	session.mu.Lock()
	defer session.mu.Unlock()
	require.Len(t, session.SearchResults[0], 1)
	assert.Equal(t, "img1", session.SearchResults[0][0].ID)
}

func TestSearchImagesEndpointBadSplitIndex(t *testing.T) {
	server, session := testServer(t)
	router := server.Router()

	for _, split := range []string{"5", "-1", "abc"} {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/search/"+session.ID+"/"+split, nil)
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "split %q", split)
	}
}

func TestSearchImagesEndpointUnknownSession(t *testing.T) {
	server, _ := testServer(t)
	router := server.Router()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search/no-such-session/0", nil)
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSearchAndTimelineConcurrently(t *testing.T) {
	server, session := testServer(t)
	router := server.Router()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			recorder := httptest.NewRecorder()
			path := "/api/search/" + session.ID + "/" + strconv.Itoa(n%2)
			req := httptest.NewRequest(http.MethodPost, path, nil)
			router.ServeHTTP(recorder, req)
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/timeline/"+session.ID, nil)
			router.ServeHTTP(recorder, req)
		}()
	}
	wg.Wait()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/timeline/"+session.ID, nil)
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
