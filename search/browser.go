package search

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// BrowserSearcher scrapes image results from a public search page with a
// headless browser. It is the fallback when no API key is configured;
// results carry no metadata beyond the image URL.
type BrowserSearcher struct {
	Timeout time.Duration
}

// NewBrowserSearcher builds a scraper with a 30-second page timeout.
func NewBrowserSearcher() *BrowserSearcher {
	return &BrowserSearcher{Timeout: 30 * time.Second}
}

// SearchImages loads an image search page for the query and collects the
// first count image sources from it.
func (b *BrowserSearcher) SearchImages(ctx context.Context, query string, count int) ([]Image, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %v", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("error connecting to browser: %v", err)
	}
	defer browser.Close()

	// Create page with panic recovery
	var page *rod.Page
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Error creating page: %v\n", r)
			}
		}()
		page = browser.MustPage()
	}()
	if page == nil {
		return nil, fmt.Errorf("failed to create page")
	}
	page = page.Context(ctx).Timeout(b.Timeout)

	searchURL := "https://www.bing.com/images/search?q=" + url.QueryEscape(query)
	if err := page.Navigate(searchURL); err != nil {
		return nil, fmt.Errorf("error navigating to search page: %v", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("error waiting for search page: %v", err)
	}

	elements, err := page.Elements("img")
	if err != nil {
		return nil, fmt.Errorf("error collecting images: %v", err)
	}

	var images []Image
	for _, element := range elements {
		if len(images) >= count {
			break
		}

		src, err := element.Attribute("src")
		if err != nil || src == nil {
			continue
		}
		if !strings.HasPrefix(*src, "http") {
			continue
		}

		images = append(images, Image{
			ID:      imageID(*src),
			URL:     *src,
			FullURL: *src,
			Service: "browser",
		})
	}

	return images, nil
}
