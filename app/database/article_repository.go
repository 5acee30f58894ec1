package database

import (
	"database/sql"
	"fmt"
)

var _ ArticleRepository = (*ArticleRepositoryImpl)(nil)

type ArticleRepositoryImpl struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepositoryImpl {
	return &ArticleRepositoryImpl{db: db}
}

func (r *ArticleRepositoryImpl) ExistsByURL(url string) (bool, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM articles WHERE url = $1 LIMIT 1`, url).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return true, nil
}

// InsertArticle writes a new article row. The on-conflict clause makes the
// existence check plus insert effectively atomic per URL: a concurrent
// writer racing on the same URL loses silently and gets inserted=false.
func (r *ArticleRepositoryImpl) InsertArticle(article Article) (string, bool, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO articles (
			title, description, url, url_to_image, published_at,
			content, full_content, preview_content, category_id,
			source, author, language, is_approved
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.Description, article.URL,
		nullable(article.URLToImage), article.PublishedAt,
		article.Content, article.FullContent, nullable(article.PreviewContent),
		nullable(article.CategoryID), article.Source, article.Author,
		article.Language, article.IsApproved).Scan(&id)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, true, nil
}

func (r *ArticleRepositoryImpl) UpdatePreview(articleID string, preview string) error {
	_, err := r.db.Exec(`UPDATE articles SET preview_content = $2 WHERE id = $1`, articleID, preview)
	if err != nil {
		return fmt.Errorf("failed to update preview: %w", err)
	}
	return nil
}

func (r *ArticleRepositoryImpl) GetArticle(articleID string) (*Article, error) {
	row := r.db.QueryRow(`
		SELECT id, title, COALESCE(description, ''), url, COALESCE(url_to_image, ''),
			published_at, COALESCE(content, ''), COALESCE(full_content, ''),
			COALESCE(preview_content, ''), COALESCE(category_id::text, ''),
			source, COALESCE(author, ''), language, is_approved, created_at
		FROM articles WHERE id = $1
	`, articleID)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

func (r *ArticleRepositoryImpl) GetRecentArticles(limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, COALESCE(description, ''), url, COALESCE(url_to_image, ''),
			published_at, COALESCE(content, ''), COALESCE(full_content, ''),
			COALESCE(preview_content, ''), COALESCE(category_id::text, ''),
			source, COALESCE(author, ''), language, is_approved, created_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *article)
	}

	return articles, rows.Err()
}

func (r *ArticleRepositoryImpl) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

func (r *ArticleRepositoryImpl) GetCountBySource() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT source, COUNT(*) FROM articles GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		counts[source] = count
	}

	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.URLToImage,
		&a.PublishedAt, &a.Content, &a.FullContent, &a.PreviewContent,
		&a.CategoryID, &a.Source, &a.Author, &a.Language, &a.IsApproved,
		&a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
