package feed

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/globenews/globe-news/app/sources"
)

var testSource = sources.Source{
	Name:           "Test Source",
	URL:            "https://example.org/rss",
	Language:       "en",
	Category:       "Technology",
	Country:        "UK",
	Reliability:    8,
	ExtractContent: true,
}

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>Test Description</description>
    <item>
      <title>First Article</title>
      <link>https://example.org/articles/first</link>
      <description>A substantial first description with enough text.</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <author>test@example.org (Jane Writer)</author>
    </item>
    <item>
      <title>Second Article</title>
      <link>https://example.org/articles/second</link>
      <description>Second description.</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got: %d", len(candidates))
	}

	first := candidates[0]
	if first.Title != "First Article" {
		t.Errorf("Expected title 'First Article', got: %s", first.Title)
	}
	if first.URL != "https://example.org/articles/first" {
		t.Errorf("Expected URL 'https://example.org/articles/first', got: %s", first.URL)
	}
	if first.Summary != "A substantial first description with enough text." {
		t.Errorf("Unexpected summary: %s", first.Summary)
	}
	if first.FullContent != first.Summary {
		t.Errorf("Expected full content to start equal to summary")
	}
	if first.Author != "Jane Writer" {
		t.Errorf("Expected author 'Jane Writer', got: %s", first.Author)
	}
	if first.SourceName != "Test Source" {
		t.Errorf("Expected source 'Test Source', got: %s", first.SourceName)
	}
	if first.Category != "Technology" {
		t.Errorf("Expected category 'Technology', got: %s", first.Category)
	}
	if first.Language != "en" {
		t.Errorf("Expected language 'en', got: %s", first.Language)
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(expected) {
		t.Errorf("Expected published at %v, got: %v", expected, first.PublishedAt)
	}

	// Second item carries no author and no date
	second := candidates[1]
	if second.Author != "Test Source" {
		t.Errorf("Expected author fallback to source name, got: %s", second.Author)
	}
	if second.PublishedAt.IsZero() {
		t.Error("Expected missing date to fall back to now, got zero time")
	}
}

func TestParseSkipsInvalidEntries(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>Test</description>
    <item>
      <title></title>
      <link>https://example.org/articles/no-title</link>
      <description>Entry without a title.</description>
    </item>
    <item>
      <title>No Link Entry</title>
      <description>Entry without a link.</description>
    </item>
    <item>
      <title>Short Link Entry</title>
      <link>http://x</link>
      <description>Link below the minimum sane length.</description>
    </item>
    <item>
      <title>Valid Entry</title>
      <link>https://example.org/articles/valid</link>
      <description>The only valid entry here.</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got: %d", len(candidates))
	}
	if candidates[0].Title != "Valid Entry" {
		t.Errorf("Expected 'Valid Entry', got: %s", candidates[0].Title)
	}
}

func TestParsePerFeedLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Big Feed</title><link>https://example.org</link><description>x</description>`)
	for i := 0; i < 25; i++ {
		sb.WriteString(`<item><title>Entry `)
		sb.WriteByte(byte('A' + i))
		sb.WriteString(`</title><link>https://example.org/articles/entry-`)
		sb.WriteByte(byte('a' + i))
		sb.WriteString(`</link><description>A description.</description></item>`)
	}
	sb.WriteString(`</channel></rss>`)

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(sb.String()), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates) != 10 {
		t.Errorf("Expected 10 candidates after cap, got: %d", len(candidates))
	}

	// Feed order must be preserved
	if candidates[0].Title != "Entry A" || candidates[9].Title != "Entry J" {
		t.Errorf("Expected feed order preserved, got first=%s last=%s",
			candidates[0].Title, candidates[9].Title)
	}
}

func TestParseSummaryCleaning(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>x</description>
    <item>
      <title>Markup Entry</title>
      <link>https://example.org/articles/markup</link>
      <description>&lt;p&gt;Some   &lt;b&gt;bold&lt;/b&gt;    text &amp;amp; more.&lt;/p&gt;</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got: %d", len(candidates))
	}

	summary := candidates[0].Summary
	if strings.Contains(summary, "<") || strings.Contains(summary, ">") {
		t.Errorf("Expected tags stripped, got: %s", summary)
	}
	if strings.Contains(summary, "  ") {
		t.Errorf("Expected whitespace collapsed, got: %s", summary)
	}
	if !strings.Contains(summary, "Some bold text & more.") {
		t.Errorf("Unexpected cleaned summary: %s", summary)
	}
}

func TestParseSummaryCap(t *testing.T) {
	long := strings.Repeat("word ", 200)
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>x</description>
    <item>
      <title>Long Entry</title>
      <link>https://example.org/articles/long</link>
      <description>` + long + `</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates[0].Summary) > 500 {
		t.Errorf("Expected summary capped at 500 chars, got %d", len(candidates[0].Summary))
	}
}

func TestParseSummaryCapMultibyte(t *testing.T) {
	long := strings.Repeat("€", 200)
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>x</description>
    <item>
      <title>Ikiganiro gishya cyatangajwe</title>
      <link>https://example.org/articles/multibyte</link>
      <description>` + long + `</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	summary := candidates[0].Summary
	if len(summary) > 500 {
		t.Errorf("Expected summary capped at 500 bytes, got %d", len(summary))
	}
	if !utf8.ValidString(summary) {
		t.Error("Expected capped summary to remain valid UTF-8")
	}
}

func TestParseImageExtraction(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.org</link>
    <description>x</description>
    <item>
      <title>Media Entry</title>
      <link>https://example.org/articles/media</link>
      <description>With media.</description>
      <media:thumbnail url="https://example.org/images/thumb.jpg"/>
    </item>
    <item>
      <title>Enclosure Entry</title>
      <link>https://example.org/articles/enclosure</link>
      <description>With enclosure.</description>
      <enclosure url="https://example.org/images/photo.jpg" length="12345" type="image/jpeg"/>
    </item>
    <item>
      <title>Embedded Image Entry</title>
      <link>https://example.org/articles/embedded</link>
      <description>&lt;img src="https://example.org/images/inline.png"&gt; Story text.</description>
    </item>
    <item>
      <title>Bare Entry</title>
      <link>https://example.org/articles/bare</link>
      <description>No image anywhere.</description>
    </item>
  </channel>
</rss>`

	parser := NewParser(10)
	candidates, err := parser.Run([]byte(rssData), testSource)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("Expected 4 candidates, got: %d", len(candidates))
	}

	if candidates[0].ImageURL != "https://example.org/images/thumb.jpg" {
		t.Errorf("Expected media thumbnail URL, got: %s", candidates[0].ImageURL)
	}
	if candidates[1].ImageURL != "https://example.org/images/photo.jpg" {
		t.Errorf("Expected enclosure URL, got: %s", candidates[1].ImageURL)
	}
	if candidates[2].ImageURL != "https://example.org/images/inline.png" {
		t.Errorf("Expected embedded img URL, got: %s", candidates[2].ImageURL)
	}
	if candidates[3].ImageURL != "" {
		t.Errorf("Expected empty image URL, got: %s", candidates[3].ImageURL)
	}
}

func TestParseMalformedFeed(t *testing.T) {
	parser := NewParser(10)

	if _, err := parser.Run([]byte("this is not XML at all"), testSource); err == nil {
		t.Error("Expected error for malformed feed")
	}
}

func TestHasFullContent(t *testing.T) {
	c := Candidate{Summary: strings.Repeat("s", 100)}

	c.FullContent = c.Summary
	if c.HasFullContent() {
		t.Error("Expected no full content when equal to summary")
	}

	c.FullContent = strings.Repeat("f", 199)
	if c.HasFullContent() {
		t.Error("Expected no full content below the margin")
	}

	c.FullContent = strings.Repeat("f", 200)
	if !c.HasFullContent() {
		t.Error("Expected full content at the margin")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"<p>hello</p>", "hello"},
		{"a\x00b", "ab"},
		{"a   b\n\nc", "a b c"},
		{"&lt;tag&gt;", "<tag>"},
	}

	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
