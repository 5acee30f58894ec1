package feed

import (
	"time"
)

// Candidate is a parsed-but-not-yet-persisted feed entry. FullContent
// starts out equal to Summary and is overwritten when content
// extraction improves on it.
type Candidate struct {
	Title       string
	URL         string
	Summary     string
	FullContent string
	ImageURL    string
	PublishedAt time.Time
	Author      string
	SourceName  string
	Category    string
	Language    string
}

// HasFullContent reports whether extraction produced a body that
// meaningfully exceeds the feed-provided snippet.
func (c Candidate) HasFullContent() bool {
	return len(c.FullContent) >= len(c.Summary)+extractionMargin
}

// extractionMargin is the minimum character-length improvement required
// for extracted content to count as a full article body.
const extractionMargin = 100
