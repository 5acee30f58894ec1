package feed

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/globenews/globe-news/app/sources"
)

const (
	maxTitleLength   = 400
	maxSummaryLength = 500
	minLinkLength    = 10
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	imgSrcRe     = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
)

type Parser struct {
	gofeedParser *gofeed.Parser
	perFeedLimit int
}

func NewParser(perFeedLimit int) *Parser {
	if perFeedLimit <= 0 {
		perFeedLimit = 10
	}
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		perFeedLimit: perFeedLimit,
	}
}

// Run turns one feed's raw bytes into normalized candidates. Entries
// without a usable title or link are skipped; a malformed feed yields an
// error the caller treats as that source contributing nothing.
func (p *Parser) Run(data []byte, source sources.Source) ([]Candidate, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, p.perFeedLimit)
	for _, item := range parsed.Items {
		if len(candidates) >= p.perFeedLimit {
			break
		}

		candidate, ok := p.normalizeItem(item, source)
		if !ok {
			slog.Warn("Skipping malformed feed entry", "source", source.Name, "link", item.Link)
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, source sources.Source) (Candidate, bool) {
	title := CleanText(item.Title)
	if title == "" {
		return Candidate{}, false
	}
	title = truncate(title, maxTitleLength)

	link := strings.TrimSpace(item.Link)
	if link == "" || len(link) < minLinkLength {
		return Candidate{}, false
	}

	summary := p.extractSummary(item)

	candidate := Candidate{
		Title:       title,
		URL:         link,
		Summary:     summary,
		FullContent: summary,
		ImageURL:    p.extractImageURL(item),
		PublishedAt: p.parseDate(item),
		Author:      p.extractAuthor(item, source),
		SourceName:  source.Name,
		Category:    source.Category,
		Language:    source.Language,
	}

	return candidate, true
}

// extractSummary takes the entry's description, falling back to its
// content block when the description is empty.
func (p *Parser) extractSummary(item *gofeed.Item) string {
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}

	return truncate(CleanText(raw), maxSummaryLength)
}

func (p *Parser) parseDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now().UTC()
}

func (p *Parser) extractAuthor(item *gofeed.Item, source sources.Source) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		if name := strings.TrimSpace(item.Authors[0].Name); name != "" {
			return name
		}
	}
	if item.Author != nil {
		if name := strings.TrimSpace(item.Author.Name); name != "" {
			return name
		}
	}
	return source.Name
}

// extractImageURL checks media:content, media:thumbnail, and enclosures
// before falling back to an <img src> scan of the embedded markup.
func (p *Parser) extractImageURL(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if url := ext.Attrs["url"]; isHTTPURL(url) {
				return url
			}
		}
		for _, ext := range media["thumbnail"] {
			if url := ext.Attrs["url"]; isHTTPURL(url) {
				return url
			}
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		if strings.HasPrefix(enclosure.Type, "image/") && isHTTPURL(enclosure.URL) {
			return enclosure.URL
		}
	}

	for _, block := range []string{item.Description, item.Content} {
		if match := imgSrcRe.FindStringSubmatch(block); match != nil && isHTTPURL(match[1]) {
			return match[1]
		}
	}

	return ""
}

func isHTTPURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// CleanText strips markup, unescapes HTML entities, removes control
// characters, and collapses whitespace runs to single spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	clean := tagRe.ReplaceAllString(text, " ")
	clean = html.UnescapeString(clean)
	clean = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, clean)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}
