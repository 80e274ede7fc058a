package splitter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// stopwords filtered out of keyword extraction.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true, "from": true, "up": true,
	"about": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true,
	"between": true, "among": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "can": true,
	"this": true, "that": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true, "my": true, "your": true, "his": true,
	"its": true, "our": true, "their": true,
}

// Go's \w is ASCII-only, so letter/number classes are spelled out to keep
// accented subtitle text intact.
var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	nonTextRegex     = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// tokenize splits text into words, stripping HTML tags and characters
// outside basic punctuation.
func tokenize(text string) []string {
	clean := htmlTagRegex.ReplaceAllString(text, "")
	clean = nonTextRegex.ReplaceAllString(clean, " ")
	return strings.Fields(clean)
}

// ExtractKeywords returns lower-cased tokens with punctuation stripped,
// longer than two characters and not stopwords. Duplicates are removed
// while preserving first-seen order.
func ExtractKeywords(text string) []string {
	words := tokenize(strings.ToLower(text))

	var keywords []string
	seen := make(map[string]bool)
	for _, word := range words {
		clean := punctuationRegex.ReplaceAllString(word, "")
		if utf8.RuneCountInString(clean) <= 2 || stopwords[clean] || seen[clean] {
			continue
		}
		seen[clean] = true
		keywords = append(keywords, clean)
	}

	return keywords
}
