package database

// ArticleRepository is the storage boundary consumed by the fetch
// pipeline. All methods are safe for concurrent callers.
type ArticleRepository interface {
	ExistsByURL(url string) (bool, error)
	// InsertArticle persists a new article; the bool result is false when
	// the URL already existed and nothing was written.
	InsertArticle(article Article) (string, bool, error)
	UpdatePreview(articleID string, preview string) error
	// GetArticle returns (nil, nil) when no row matches.
	GetArticle(articleID string) (*Article, error)
	GetRecentArticles(limit int) ([]Article, error)
	GetArticleCount() (int, error)
	GetCountBySource() (map[string]int, error)
}

type CategoryRepository interface {
	// GetOrCreateCategory is insert-if-absent: concurrent callers racing
	// on the same name both receive the surviving row's id.
	GetOrCreateCategory(name string) (string, error)
	GetCategories() ([]Category, error)
}
