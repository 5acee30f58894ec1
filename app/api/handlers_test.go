package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/globenews/globe-news/app/database"
	"github.com/globenews/globe-news/app/preview"
	"github.com/globenews/globe-news/app/scheduler"
	"github.com/globenews/globe-news/app/sources"
)

type stubArticleRepo struct {
	articles map[string]database.Article
	previews map[string]string
}

func newStubArticleRepo(articles ...database.Article) *stubArticleRepo {
	r := &stubArticleRepo{
		articles: make(map[string]database.Article),
		previews: make(map[string]string),
	}
	for _, a := range articles {
		r.articles[a.ID] = a
	}
	return r
}

func (r *stubArticleRepo) ExistsByURL(url string) (bool, error) { return false, nil }

func (r *stubArticleRepo) InsertArticle(a database.Article) (string, bool, error) {
	return a.ID, true, nil
}

func (r *stubArticleRepo) UpdatePreview(id, preview string) error {
	if _, ok := r.articles[id]; !ok {
		return errors.New("article not found")
	}
	r.previews[id] = preview
	return nil
}

func (r *stubArticleRepo) GetArticle(id string) (*database.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *stubArticleRepo) GetRecentArticles(limit int) ([]database.Article, error) {
	var out []database.Article
	for _, a := range r.articles {
		if len(out) >= limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubArticleRepo) GetArticleCount() (int, error) { return len(r.articles), nil }

func (r *stubArticleRepo) GetCountBySource() (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range r.articles {
		counts[a.Source]++
	}
	return counts, nil
}

type stubCategoryRepo struct {
	categories []database.Category
}

func (r *stubCategoryRepo) GetOrCreateCategory(name string) (string, error) { return "cat-1", nil }

func (r *stubCategoryRepo) GetCategories() ([]database.Category, error) {
	return r.categories, nil
}

type stubScheduler struct {
	triggerErr error
	triggered  int
}

func (s *stubScheduler) TriggerFetch() error {
	if s.triggerErr != nil {
		return s.triggerErr
	}
	s.triggered++
	return nil
}

func (s *stubScheduler) Stats() scheduler.Stats {
	return scheduler.Stats{Interval: 30 * time.Minute, Runs: 2, LastRun: time.Now()}
}

func newTestServer(articles *stubArticleRepo, sched *stubScheduler, apiKey string) http.Handler {
	handler := NewHandler(
		articles,
		&stubCategoryRepo{categories: []database.Category{{ID: "cat-1", Name: "Sports"}}},
		sources.NewRegistry(),
		sched,
		preview.NewAnalyzer(nil),
		preview.NewBuilder(),
	)
	return NewServer(handler, apiKey)
}

func doRequest(t *testing.T, server http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	server := newTestServer(newStubArticleRepo(), &stubScheduler{}, "secret")

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"wrong key", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"valid key header", map[string]string{"X-API-Key": "secret"}, http.StatusAccepted},
		{"valid bearer token", map[string]string{"Authorization": "Bearer secret"}, http.StatusAccepted},
		{"wrong bearer token", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, http.MethodPost, "/api/fetch", tt.headers)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestWriteEndpointsAbsentWithoutKey(t *testing.T) {
	server := newTestServer(newStubArticleRepo(), &stubScheduler{}, "")
	w := doRequest(t, server, http.MethodPost, "/api/fetch", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when API is disabled", w.Code)
	}
}

func TestTriggerFetchConflict(t *testing.T) {
	sched := &stubScheduler{triggerErr: errors.New("a fetch is already pending")}
	server := newTestServer(newStubArticleRepo(), sched, "secret")

	w := doRequest(t, server, http.MethodPost, "/api/fetch", map[string]string{"X-API-Key": "secret"})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestListArticles(t *testing.T) {
	repo := newStubArticleRepo(
		database.Article{ID: "a1", Title: "One", URL: "https://example.org/1", Source: "Wire"},
		database.Article{ID: "a2", Title: "Two", URL: "https://example.org/2", Source: "Wire"},
	)
	server := newTestServer(repo, &stubScheduler{}, "")

	w := doRequest(t, server, http.MethodGet, "/articles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Articles []ArticleResponse `json:"articles"`
		Count    int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 2 || len(body.Articles) != 2 {
		t.Errorf("count = %d, articles = %d", body.Count, len(body.Articles))
	}
}

func TestListArticlesRejectsBadLimit(t *testing.T) {
	server := newTestServer(newStubArticleRepo(), &stubScheduler{}, "")
	for _, limit := range []string{"0", "-5", "abc"} {
		w := doRequest(t, server, http.MethodGet, "/articles?limit="+limit, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestGetArticleNotFound(t *testing.T) {
	server := newTestServer(newStubArticleRepo(), &stubScheduler{}, "")
	w := doRequest(t, server, http.MethodGet, "/articles/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRegeneratePreview(t *testing.T) {
	repo := newStubArticleRepo(database.Article{
		ID:          "a1",
		Title:       "City wins championship after dramatic final",
		Description: "The local team said the title match was its best performance in years.",
		URL:         "https://example.org/final",
		CategoryID:  "cat-1",
		Source:      "Sports Desk",
		PublishedAt: time.Now().Add(-2 * time.Hour),
	})
	server := newTestServer(repo, &stubScheduler{}, "secret")

	w := doRequest(t, server, http.MethodPost, "/api/articles/a1/preview", map[string]string{"X-API-Key": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		ArticleType string `json:"article_type"`
		Preview     string `json:"preview"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ArticleType != string(preview.TypeSportsEvent) {
		t.Errorf("article_type = %q, want sports_event", body.ArticleType)
	}
	if !strings.Contains(body.Preview, "championship") {
		t.Error("preview does not mention the article")
	}
	if repo.previews["a1"] == "" {
		t.Error("regenerated preview was not stored")
	}
}

func TestHealthAndStats(t *testing.T) {
	server := newTestServer(newStubArticleRepo(), &stubScheduler{}, "")

	for _, path := range []string{"/health", "/stats", "/", "/categories"} {
		w := doRequest(t, server, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d", path, w.Code)
		}
	}
}
