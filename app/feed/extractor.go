package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// extractThreshold is how many characters beyond the fallback
	// description an extraction result must reach to be accepted.
	extractThreshold = 100

	maxExtractedLength = 10000
)

// ExtractStrategy isolates the article body from raw page HTML. The
// result is plain text; implementations reject pages they cannot
// improve on by returning an error.
type ExtractStrategy interface {
	Name() string
	Extract(html []byte, fallbackLen int) (string, error)
}

// ReadabilityStrategy runs a readability-style main-content extraction
// over the page.
type ReadabilityStrategy struct{}

func (s *ReadabilityStrategy) Name() string { return "readability" }

func (s *ReadabilityStrategy) Extract(html []byte, fallbackLen int) (string, error) {
	if len(html) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(bytes.NewReader(html), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	content := CleanText(article.Content)
	if len(content) <= fallbackLen+extractThreshold {
		return "", fmt.Errorf("extracted content not substantively longer than fallback (%d chars)", len(content))
	}

	return truncate(content, maxExtractedLength), nil
}

// PatternStrategy scans the page for known article container shapes.
// General-purpose readability heuristics fail on a meaningful fraction
// of real-world news markup; this recovers many of those pages.
type PatternStrategy struct{}

func (s *PatternStrategy) Name() string { return "pattern" }

var containerSelectors = []string{
	"article",
	"div.article", "div[class*='article']",
	"div[class*='story']",
	"div.content", "div[class*='post-content']",
	"div#content",
}

func (s *PatternStrategy) Extract(html []byte, fallbackLen int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range containerSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}

		content := CleanText(selection.Text())
		if len(content) > fallbackLen+extractThreshold {
			return truncate(content, maxExtractedLength), nil
		}
	}

	return "", fmt.Errorf("no article container cleared the length threshold")
}

// Extractor fetches an article page and derives the full body text,
// trying each strategy in order. Every failure path returns the
// feed-provided fallback description unchanged.
type Extractor struct {
	client     *http.Client
	userAgent  string
	strategies []ExtractStrategy
}

func NewExtractor(client *http.Client, userAgent string) *Extractor {
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		strategies: []ExtractStrategy{
			&ReadabilityStrategy{},
			&PatternStrategy{},
		},
	}
}

// NewExtractorWithStrategies is used by callers that substitute a
// stronger primary extractor.
func NewExtractorWithStrategies(client *http.Client, userAgent string, strategies ...ExtractStrategy) *Extractor {
	return &Extractor{client: client, userAgent: userAgent, strategies: strategies}
}

func (e *Extractor) Run(ctx context.Context, url, fallback string) string {
	if !isHTTPURL(url) || strings.Contains(url, "example.com") {
		return fallback
	}

	html, err := e.fetchPage(ctx, url)
	if err != nil {
		slog.Debug("Article fetch failed, keeping feed description", "url", url, "error", err)
		return fallback
	}

	for _, strategy := range e.strategies {
		content, err := strategy.Extract(html, len(fallback))
		if err != nil {
			slog.Debug("Extraction strategy rejected page", "strategy", strategy.Name(), "url", url, "error", err)
			continue
		}

		slog.Debug("Content extracted", "strategy", strategy.Name(), "url", url, "content_length", len(content))
		return content
	}

	return fallback
}

func (e *Extractor) fetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// truncate caps s at max bytes, backing up so a multibyte rune is never
// split mid-sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
