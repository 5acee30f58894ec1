package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/globenews/globe-news/app/database"
	"github.com/globenews/globe-news/app/preview"
	"github.com/globenews/globe-news/app/sources"
)

const (
	defaultArticleLimit = 20
	maxArticleLimit     = 100
)

func NewHandler(articles database.ArticleRepository, categories database.CategoryRepository,
	registry *sources.Registry, sched SchedulerInterface,
	analyzer *preview.Analyzer, builder *preview.Builder) *Handler {
	return &Handler{
		articles:   articles,
		categories: categories,
		registry:   registry,
		scheduler:  sched,
		analyzer:   analyzer,
		builder:    builder,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sources":   h.registry.Count(),
	}

	if count, err := h.articles.GetArticleCount(); err == nil {
		health["articles"] = count
	} else {
		health["database"] = "unavailable"
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"sources":    h.registry.Count(),
		"categories": h.registry.Categories(),
	}

	if count, err := h.articles.GetArticleCount(); err == nil {
		stats["articles"] = count
	}
	if bySource, err := h.articles.GetCountBySource(); err == nil {
		stats["articles_by_source"] = bySource
	}

	schedStats := h.scheduler.Stats()
	stats["scheduler"] = map[string]interface{}{
		"interval_seconds": int(schedStats.Interval.Seconds()),
		"runs":             schedStats.Runs,
		"last_run":         schedStats.LastRun.Format(time.RFC3339),
		"last_fetched":     schedStats.LastResult.Fetched,
		"last_fallback":    schedStats.LastResult.Fallback,
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListArticles(c *gin.Context) {
	limit := defaultArticleLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxArticleLimit {
		limit = maxArticleLimit
	}

	articles, err := h.articles.GetRecentArticles(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"articles": out, "count": len(out)})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	article, err := h.articles.GetArticle(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if article == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetCategories()
	if err != nil {
		slog.Error("Database error", "operation", "list_categories", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]map[string]string, 0, len(categories))
	for _, cat := range categories {
		out = append(out, map[string]string{
			"id":          cat.ID,
			"name":        cat.Name,
			"description": cat.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) TriggerFetch(c *gin.Context) {
	if err := h.scheduler.TriggerFetch(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "fetch scheduled"})
}

// RegeneratePreview rebuilds the stored preview for one article from
// its current content.
func (h *Handler) RegeneratePreview(c *gin.Context) {
	id := c.Param("id")
	article, err := h.articles.GetArticle(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if article == nil {
		c.Status(http.StatusNotFound)
		return
	}

	categoryName := h.categoryName(article.CategoryID)

	analysis := h.analyzer.Run(preview.Input{
		Title:       article.Title,
		Description: article.Description,
		FullContent: article.FullContent,
		Category:    categoryName,
		Source:      article.Source,
	})
	previewHTML := h.builder.Run(preview.Article{
		Title:       article.Title,
		URL:         article.URL,
		ImageURL:    article.URLToImage,
		Description: article.Description,
		Author:      article.Author,
		Source:      article.Source,
		Category:    categoryName,
		PublishedAt: article.PublishedAt,
	}, analysis, time.Now().UTC())

	if err := h.articles.UpdatePreview(article.ID, previewHTML); err != nil {
		slog.Error("Failed to store preview", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           article.ID,
		"article_type": analysis.ArticleType,
		"preview":      previewHTML,
	})
}

func (h *Handler) categoryName(categoryID string) string {
	categories, err := h.categories.GetCategories()
	if err != nil {
		return "General"
	}
	for _, cat := range categories {
		if cat.ID == categoryID {
			return cat.Name
		}
	}
	return "General"
}
