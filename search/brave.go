package search

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBraveBaseURL = "https://api.search.brave.com/res/v1/images/search"

// Image is one search result. URL is the thumbnail used for display;
// FullURL is the original image used for download.
type Image struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	FullURL         string `json:"full_url"`
	Title           string `json:"title"`
	Source          string `json:"source"`
	SourceURL       string `json:"source_url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
	Service         string `json:"service"`
}

// Client talks to the Brave image search API.
type Client struct {
	APIKey     string
	BaseURL    string
	Delay      time.Duration
	HTTPClient *http.Client
}

// NewClient builds a Brave client with the given subscription token.
// Delay is slept after each search to respect rate limits.
func NewClient(apiKey string, delay time.Duration) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBraveBaseURL,
		Delay:      delay,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type braveResponse struct {
	Results []braveResult `json:"results"`
}

type braveResult struct {
	Title      string          `json:"title"`
	URL        string          `json:"url"`
	Source     string          `json:"source"`
	Properties braveProperties `json:"properties"`
	Thumbnail  braveThumbnail  `json:"thumbnail"`
}

type braveProperties struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type braveThumbnail struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchImages queries the API. Queries are truncated to the API limits
// of 400 characters and 50 words.
func (c *Client) SearchImages(ctx context.Context, query string, count int) ([]Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	// Truncate on rune boundaries so a multi-byte character is never cut
	// in half.
	if runes := []rune(query); len(runes) > 400 {
		query = string(runes[:400])
	}
	if words := strings.Fields(query); len(words) > 50 {
		query = strings.Join(words[:50], " ")
	}
	if count > 50 {
		count = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("search_lang", "en")
	params.Set("safesearch", "off")
	params.Set("spellcheck", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	images := make([]Image, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		imageURL := result.Properties.URL
		if imageURL == "" {
			continue
		}

		displayURL := result.Thumbnail.Src
		if displayURL == "" {
			displayURL = imageURL
		}

		images = append(images, Image{
			ID:              imageID(imageURL),
			URL:             displayURL,
			FullURL:         imageURL,
			Title:           result.Title,
			Source:          result.Source,
			SourceURL:       result.URL,
			Width:           result.Properties.Width,
			Height:          result.Properties.Height,
			ThumbnailWidth:  result.Thumbnail.Width,
			ThumbnailHeight: result.Thumbnail.Height,
			Service:         "brave",
		})
	}

	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}

	return images, nil
}

// imageID derives a short stable id from the image URL.
func imageID(imageURL string) string {
	sum := md5.Sum([]byte(imageURL))
	return hex.EncodeToString(sum[:])[:8]
}
