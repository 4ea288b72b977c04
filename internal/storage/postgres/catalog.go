package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/storage"
)

// CreateCategory inserts a category row.
func (s *Store) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	const query = `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_at`
	created, err := scanCategory(s.pool.QueryRow(ctx, query, category.ID, category.Name, category.Description))
	return created, translate(err)
}

// GetCategory fetches a category by ID.
func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	const query = `SELECT id, name, description, created_at FROM categories WHERE id = $1`
	category, err := scanCategory(s.pool.QueryRow(ctx, query, id))
	return category, translate(err)
}

// ListCategories returns one page of categories ordered by creation time.
func (s *Store) ListCategories(ctx context.Context, req models.PageRequest) (models.Page[models.Category], error) {
	req = req.Normalize()
	page := models.Page[models.Category]{Page: req.Page, Size: req.Size, Items: []models.Category{}}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count categories: %w", err)
	}

	const query = `
		SELECT id, name, description, created_at FROM categories
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`
	rows, err := s.pool.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return page, fmt.Errorf("list categories: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return page, fmt.Errorf("scan categories: %w", err)
	}
	page.Items = append(page.Items, items...)
	return page, nil
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateTag inserts a tag row.
func (s *Store) CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	const query = `
		INSERT INTO tags (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at`
	created, err := scanTag(s.pool.QueryRow(ctx, query, tag.ID, tag.Name))
	return created, translate(err)
}

// GetTag fetches a tag by ID.
func (s *Store) GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags WHERE id = $1`
	tag, err := scanTag(s.pool.QueryRow(ctx, query, id))
	return tag, translate(err)
}

// ListTags returns one page of tags ordered by creation time.
func (s *Store) ListTags(ctx context.Context, req models.PageRequest) (models.Page[models.Tag], error) {
	req = req.Normalize()
	page := models.Page[models.Tag]{Page: req.Page, Size: req.Size, Items: []models.Tag{}}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count tags: %w", err)
	}

	const query = `
		SELECT id, name, created_at FROM tags
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`
	rows, err := s.pool.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return page, fmt.Errorf("list tags: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tag, error) {
		return scanTag(row)
	})
	if err != nil {
		return page, fmt.Errorf("scan tags: %w", err)
	}
	page.Items = append(page.Items, items...)
	return page, nil
}

// UpdateTag replaces the names of an existing tag.
func (s *Store) UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	const query = `
		UPDATE tags SET name = $2
		WHERE id = $1
		RETURNING id, name, created_at`
	updated, err := scanTag(s.pool.QueryRow(ctx, query, tag.ID, tag.Name))
	return updated, translate(err)
}

// DeleteTag removes a tag.
func (s *Store) DeleteTag(ctx context.Context, id uuid.UUID) error {
	res, err := s.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var category models.Category
	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	return category, err
}

func scanTag(row pgx.Row) (models.Tag, error) {
	var tag models.Tag
	err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	return tag, err
}
