package api

import (
	"time"

	"github.com/globenews/globe-news/app/database"
	"github.com/globenews/globe-news/app/preview"
	"github.com/globenews/globe-news/app/scheduler"
	"github.com/globenews/globe-news/app/sources"
)

// SchedulerInterface is the slice of the scheduler the API needs.
type SchedulerInterface interface {
	TriggerFetch() error
	Stats() scheduler.Stats
}

var _ SchedulerInterface = (*scheduler.Scheduler)(nil)

type Handler struct {
	articles   database.ArticleRepository
	categories database.CategoryRepository
	registry   *sources.Registry
	scheduler  SchedulerInterface
	analyzer   *preview.Analyzer
	builder    *preview.Builder
}

type ArticleResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	URLToImage     string    `json:"url_to_image,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	FullContent    string    `json:"full_content,omitempty"`
	PreviewContent string    `json:"preview_content,omitempty"`
	Source         string    `json:"source"`
	Author         string    `json:"author,omitempty"`
	Language       string    `json:"language"`
}

func toArticleResponse(a database.Article) ArticleResponse {
	return ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		URL:            a.URL,
		URLToImage:     a.URLToImage,
		PublishedAt:    a.PublishedAt,
		FullContent:    a.FullContent,
		PreviewContent: a.PreviewContent,
		Source:         a.Source,
		Author:         a.Author,
		Language:       a.Language,
	}
}
