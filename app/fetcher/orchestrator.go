package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/globenews/globe-news/app/database"
	"github.com/globenews/globe-news/app/feed"
	"github.com/globenews/globe-news/app/preview"
	"github.com/globenews/globe-news/app/sources"
)

const maxFeedBodySize = 10 << 20

// Options bound one fetch run. Zero values fall back to working
// defaults so tests can construct an Orchestrator tersely.
type Options struct {
	WorkerCount   int
	RunArticleCap int
	UserAgent     string
	FeedTimeout   time.Duration
}

// Result summarizes one fetch run.
type Result struct {
	Fetched   int
	Fallback  bool
	PerSource map[string]int
}

// Orchestrator runs the fetch pipeline: pull every registered feed,
// parse it, deduplicate against storage, extract article bodies where
// the source allows it, and persist new articles with a generated
// preview. Sources are fanned out across a bounded worker pool;
// candidates within one source are handled sequentially in feed order.
type Orchestrator struct {
	registry   *sources.Registry
	parser     *feed.Parser
	extractor  *feed.Extractor
	analyzer   *preview.Analyzer
	builder    *preview.Builder
	articles   database.ArticleRepository
	categories database.CategoryRepository
	client     *http.Client
	opts       Options
}

func NewOrchestrator(
	registry *sources.Registry,
	parser *feed.Parser,
	extractor *feed.Extractor,
	analyzer *preview.Analyzer,
	builder *preview.Builder,
	articles database.ArticleRepository,
	categories database.CategoryRepository,
	opts Options,
) *Orchestrator {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 4
	}
	if opts.RunArticleCap <= 0 {
		opts.RunArticleCap = 200
	}
	if opts.FeedTimeout <= 0 {
		opts.FeedTimeout = 45 * time.Second
	}
	return &Orchestrator{
		registry:   registry,
		parser:     parser,
		extractor:  extractor,
		analyzer:   analyzer,
		builder:    builder,
		articles:   articles,
		categories: categories,
		client:     &http.Client{Timeout: opts.FeedTimeout},
		opts:       opts,
	}
}

// Run fetches all registered sources once. When every source yields
// nothing, a small built-in set of placeholder articles is seeded so
// downstream consumers never see an empty result.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	srcs := o.registry.ForFetching(0)
	slog.Info("Starting fetch run", "sources", len(srcs), "workers", o.opts.WorkerCount)

	var (
		mu        sync.Mutex
		total     int
		seen      int
		perSource = make(map[string]int)
	)

	reserve := func() bool {
		mu.Lock()
		defer mu.Unlock()
		seen++
		if total >= o.opts.RunArticleCap {
			return false
		}
		total++
		return true
	}
	release := func() {
		mu.Lock()
		total--
		mu.Unlock()
	}
	credit := func(source string) {
		mu.Lock()
		perSource[source]++
		mu.Unlock()
	}

	jobs := make(chan sources.Source)
	var wg sync.WaitGroup
	for i := 0; i < o.opts.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				o.fetchSource(ctx, src, reserve, release, credit)
			}
		}()
	}

feedLoop:
	for _, src := range srcs {
		select {
		case <-ctx.Done():
			break feedLoop
		case jobs <- src:
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	result := Result{Fetched: total, PerSource: perSource}
	noCandidates := seen == 0
	mu.Unlock()

	// Placeholders only cover total outage. A run where every candidate
	// was already stored is a healthy no-op.
	if noCandidates && ctx.Err() == nil {
		seeded := o.seedFallback(ctx)
		result.Fetched = seeded
		result.Fallback = seeded > 0
	}

	slog.Info("Fetch run complete",
		"fetched", result.Fetched,
		"fallback", result.Fallback,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return result, ctx.Err()
}

func (o *Orchestrator) fetchSource(ctx context.Context, src sources.Source, reserve func() bool, release func(), credit func(string)) {
	data, err := o.fetchFeed(ctx, src.URL)
	if err != nil {
		slog.Warn("Failed to fetch feed", "source", src.Name, "error", err)
		return
	}

	candidates, err := o.parser.Run(data, src)
	if err != nil {
		slog.Warn("Failed to parse feed", "source", src.Name, "error", err)
		return
	}

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return
		}
		if !reserve() {
			slog.Info("Run article cap reached", "source", src.Name)
			return
		}
		inserted, err := o.persist(ctx, candidate, src.ExtractContent)
		if err != nil {
			slog.Warn("Failed to store article", "source", src.Name, "url", candidate.URL, "error", err)
		}
		if !inserted {
			release()
			continue
		}
		credit(src.Name)
	}
}

func (o *Orchestrator) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("User-Agent", o.opts.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFeedBodySize))
}

// persist writes one candidate if its URL is new. The bool result is
// true only when a row was actually inserted.
func (o *Orchestrator) persist(ctx context.Context, candidate feed.Candidate, extract bool) (bool, error) {
	exists, err := o.articles.ExistsByURL(candidate.URL)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if exists {
		return false, nil
	}

	if candidate.FullContent == "" {
		candidate.FullContent = candidate.Summary
	}
	if candidate.ImageURL == "" {
		candidate.ImageURL = placeholderImage(candidate.Category)
	}
	if extract {
		candidate.FullContent = o.extractor.Run(ctx, candidate.URL, candidate.Summary)
	}

	categoryID, err := o.categories.GetOrCreateCategory(candidate.Category)
	if err != nil {
		return false, fmt.Errorf("failed to resolve category: %w", err)
	}

	article := database.Article{
		Title:       candidate.Title,
		Description: candidate.Summary,
		URL:         candidate.URL,
		URLToImage:  candidate.ImageURL,
		PublishedAt: candidate.PublishedAt,
		Content:     candidate.Summary,
		FullContent: candidate.FullContent,
		CategoryID:  categoryID,
		Source:      candidate.SourceName,
		Author:      candidate.Author,
		Language:    candidate.Language,
	}

	id, inserted, err := o.articles.InsertArticle(article)
	if err != nil {
		return false, fmt.Errorf("failed to insert article: %w", err)
	}
	if !inserted {
		return false, nil
	}

	// Preview generation failing never loses the article.
	previewHTML := o.buildPreview(candidate)
	if err := o.articles.UpdatePreview(id, previewHTML); err != nil {
		slog.Warn("Failed to store preview", "url", candidate.URL, "error", err)
	}
	return true, nil
}

func (o *Orchestrator) buildPreview(candidate feed.Candidate) string {
	analysis := o.analyzer.Run(preview.Input{
		Title:       candidate.Title,
		Description: candidate.Summary,
		FullContent: candidate.FullContent,
		Category:    candidate.Category,
		Source:      candidate.SourceName,
	})
	return o.builder.Run(preview.Article{
		Title:       candidate.Title,
		URL:         candidate.URL,
		ImageURL:    candidate.ImageURL,
		Description: candidate.Summary,
		Author:      candidate.Author,
		Source:      candidate.SourceName,
		Category:    candidate.Category,
		PublishedAt: candidate.PublishedAt,
	}, analysis, time.Now().UTC())
}

func (o *Orchestrator) seedFallback(ctx context.Context) int {
	slog.Warn("No articles fetched from any source, seeding fallback articles")

	seeded := 0
	for _, candidate := range fallbackCandidates(time.Now().UTC()) {
		inserted, err := o.persist(ctx, candidate, false)
		if err != nil {
			slog.Warn("Failed to seed fallback article", "url", candidate.URL, "error", err)
			continue
		}
		if inserted {
			seeded++
		}
	}
	return seeded
}
