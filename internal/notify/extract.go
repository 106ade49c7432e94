package notify

import (
	"regexp"
	"strings"
)

// Link is a labeled hyperlink found in a card description.
type Link struct {
	Text string
	URL  string
}

// LinkExtractor finds the link written after a fixed "<label>:" marker.
// Two shapes are recognised, tried in order:
//
//	Label: [display text](https://example.com/x)
//	Label: [https://example.com/x]
//
// Matching of the label is case-insensitive and only the first match is used.
type LinkExtractor struct {
	markdown *regexp.Regexp
	bare     *regexp.Regexp
}

// NewLinkExtractor compiles the patterns for label. A single trailing colon
// on the label is ignored. It returns nil for an empty label.
func NewLinkExtractor(label string) *LinkExtractor {
	label = strings.TrimSuffix(label, ":")
	if label == "" {
		return nil
	}
	quoted := regexp.QuoteMeta(label)
	return &LinkExtractor{
		markdown: regexp.MustCompile(`(?i)` + quoted + `:\s*\[(.*?)\]\((https?://[^\s)]+)`),
		bare:     regexp.MustCompile(`(?i)` + quoted + `:\s*\[(https?://[^\]\s]+)\]`),
	}
}

// Extract returns the link found in desc, if any.
func (e *LinkExtractor) Extract(desc string) (Link, bool) {
	if e == nil || desc == "" {
		return Link{}, false
	}

	if m := e.markdown.FindStringSubmatch(desc); m != nil && m[2] != "" {
		return Link{Text: strings.TrimSpace(m[1]), URL: strings.TrimSpace(m[2])}, true
	}

	if m := e.bare.FindStringSubmatch(desc); m != nil && m[1] != "" {
		u := strings.TrimSpace(m[1])
		return Link{Text: u, URL: u}, true
	}

	return Link{}, false
}

// ExtractLink is a one-off form of NewLinkExtractor(label).Extract(desc).
func ExtractLink(desc, label string) (Link, bool) {
	if desc == "" {
		return Link{}, false
	}
	return NewLinkExtractor(label).Extract(desc)
}
