package database

import (
	"database/sql"
	"fmt"
)

var _ CategoryRepository = (*CategoryRepositoryImpl)(nil)

type CategoryRepositoryImpl struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepositoryImpl {
	return &CategoryRepositoryImpl{db: db}
}

// GetOrCreateCategory resolves a category name to its id, inserting the
// row if absent. A concurrent insert of the same name is tolerated: the
// conflict clause suppresses the error and the follow-up select reads
// whichever row won.
func (r *CategoryRepositoryImpl) GetOrCreateCategory(name string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, name, fmt.Sprintf("%s news", name)).Scan(&id)

	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to insert category: %w", err)
	}

	err = r.db.QueryRow(`SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to get category after conflict: %w", err)
	}

	return id, nil
}

func (r *CategoryRepositoryImpl) GetCategories() ([]Category, error) {
	rows, err := r.db.Query(`
		SELECT id, name, COALESCE(description, ''), created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
