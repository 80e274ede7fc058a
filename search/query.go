// Package search finds and downloads still images for text splits, via
// the Brave image search API or a headless-browser fallback.
package search

import (
	"context"
	"sort"
	"strings"
)

// Searcher is anything that can return image results for a query.
type Searcher interface {
	SearchImages(ctx context.Context, query string, count int) ([]Image, error)
}

const maxQueries = 5

// GenerateQueries turns a split's keywords into search queries in order
// of preference: the longest standalone keywords first, then two-keyword
// combinations, capped at five.
func GenerateQueries(keywords []string) []string {
	if len(keywords) == 0 {
		return []string{"abstract art"}
	}

	var queries []string

	var important []string
	for _, keyword := range keywords {
		if len(keyword) > 3 {
			important = append(important, keyword)
		}
	}
	sort.SliceStable(important, func(i, j int) bool {
		return len(important[i]) > len(important[j])
	})
	if len(important) > 3 {
		important = important[:3]
	}
	queries = append(queries, important...)

	if len(keywords) >= 2 {
		for i := 0; i < min(2, len(keywords)); i++ {
			for j := i + 1; j < min(4, len(keywords)); j++ {
				queries = append(queries, keywords[i]+" "+keywords[j])
			}
		}
	}

	if len(queries) == 0 {
		queries = []string{"nature", "landscape", "abstract"}
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	return queries
}

// CombineKeywords joins keywords into a single query, used by the web
// layer's interactive search.
func CombineKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return "abstract art"
	}
	return strings.Join(keywords, " ")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
