// Package catalog holds the category and tag use cases. They are thin
// wrappers over storage that assign IDs and enforce field rules.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/storage"
	"github.com/hongminglow/catalog-be/internal/validation"
)

// Store is the persistence the catalog needs.
type Store interface {
	storage.CategoryStore
	storage.TagStore
}

// Service serves category and tag operations.
type Service struct {
	store Store
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateCategory stores a new category.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, validation.Field("name", "is required")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Category{}, fmt.Errorf("generate category id: %w", err)
	}
	created, err := s.store.CreateCategory(ctx, models.Category{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("category_id", created.ID.String()).Msg("category created")
	return created, nil
}

// GetCategory returns storage.ErrNotFound for unknown IDs.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// ListCategories returns one page of categories, oldest first.
func (s *Service) ListCategories(ctx context.Context, page models.PageRequest) (models.Page[models.Category], error) {
	return s.store.ListCategories(ctx, page.Normalize())
}

// DeleteCategory removes a category or returns storage.ErrNotFound.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCategory(ctx, id)
}

// CreateTag stores a new tag. Names are keyed by language code.
func (s *Service) CreateTag(ctx context.Context, names map[string]string) (models.Tag, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.Tag{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Tag{}, fmt.Errorf("generate tag id: %w", err)
	}
	created, err := s.store.CreateTag(ctx, models.Tag{ID: id, Name: names})
	if err != nil {
		return models.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("tag_id", created.ID.String()).Msg("tag created")
	return created, nil
}

// GetTag returns storage.ErrNotFound for unknown IDs.
func (s *Service) GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error) {
	return s.store.GetTag(ctx, id)
}

// ListTags returns one page of tags, oldest first.
func (s *Service) ListTags(ctx context.Context, page models.PageRequest) (models.Page[models.Tag], error) {
	return s.store.ListTags(ctx, page.Normalize())
}

// UpdateTag replaces every name of an existing tag.
func (s *Service) UpdateTag(ctx context.Context, id uuid.UUID, names map[string]string) (models.Tag, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.Tag{}, err
	}
	return s.store.UpdateTag(ctx, models.Tag{ID: id, Name: names})
}

// DeleteTag removes a tag or returns storage.ErrNotFound.
func (s *Service) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteTag(ctx, id)
}

func cleanNames(names map[string]string) (map[string]string, error) {
	if len(names) == 0 {
		return nil, validation.Field("name", "must contain at least one translation")
	}
	out := make(map[string]string, len(names))
	for lang, text := range names {
		lang, text = strings.ToLower(strings.TrimSpace(lang)), strings.TrimSpace(text)
		if lang == "" || text == "" {
			return nil, validation.Field("name", "language codes and names must not be empty")
		}
		out[lang] = text
	}
	return out, nil
}
