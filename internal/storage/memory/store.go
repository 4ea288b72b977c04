// Package memory is a process-local storage.Store used for local development
// without Postgres and as the backing store in tests.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every record in maps guarded by a single mutex. Uniqueness rules
// mirror the Postgres schema.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	identities map[uuid.UUID]models.Identity
	categories map[uuid.UUID]models.Category
	tags       map[uuid.UUID]models.Tag
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:        time.Now,
		identities: make(map[uuid.UUID]models.Identity),
		categories: make(map[uuid.UUID]models.Category),
		tags:       make(map[uuid.UUID]models.Tag),
	}
}

// Close is a no-op.
func (s *Store) Close() {}

// Save inserts a new identity.
func (s *Store) Save(ctx context.Context, identity models.Identity) (models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[identity.ID]; ok {
		return models.Identity{}, storage.ErrAlreadyExists
	}
	for _, existing := range s.identities {
		if strings.EqualFold(existing.Email, identity.Email) ||
			(identity.Phone != "" && existing.Phone == identity.Phone) ||
			(identity.Username != "" && existing.Username == identity.Username) {
			return models.Identity{}, storage.ErrAlreadyExists
		}
	}
	identity.CreatedAt = s.now().UTC()
	s.identities[identity.ID] = identity
	return identity, nil
}

// FindByEmail fetches an identity by email address, case-insensitively.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, identity := range s.identities {
		if strings.EqualFold(identity.Email, email) {
			return identity, nil
		}
	}
	return models.Identity{}, storage.ErrNotFound
}

// FindByID fetches an identity by ID.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[id]
	if !ok {
		return models.Identity{}, storage.ErrNotFound
	}
	return identity, nil
}

// CreateCategory inserts a category.
func (s *Store) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; ok {
		return models.Category{}, storage.ErrAlreadyExists
	}
	category.CreatedAt = s.now().UTC()
	s.categories[category.ID] = category
	return category, nil
}

// GetCategory fetches a category by ID.
func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, storage.ErrNotFound
	}
	return category, nil
}

// ListCategories returns one page of categories ordered by creation time.
func (s *Store) ListCategories(ctx context.Context, req models.PageRequest) (models.Page[models.Category], error) {
	if err := ctx.Err(); err != nil {
		return models.Page[models.Category]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := slices.SortedFunc(maps.Values(s.categories), func(a, b models.Category) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})
	return paginate(all, req), nil
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// CreateTag inserts a tag.
func (s *Store) CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	if err := ctx.Err(); err != nil {
		return models.Tag{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[tag.ID]; ok {
		return models.Tag{}, storage.ErrAlreadyExists
	}
	tag.Name = maps.Clone(tag.Name)
	tag.CreatedAt = s.now().UTC()
	s.tags[tag.ID] = tag
	tag.Name = maps.Clone(tag.Name)
	return tag, nil
}

// GetTag fetches a tag by ID.
func (s *Store) GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error) {
	if err := ctx.Err(); err != nil {
		return models.Tag{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag, ok := s.tags[id]
	if !ok {
		return models.Tag{}, storage.ErrNotFound
	}
	tag.Name = maps.Clone(tag.Name)
	return tag, nil
}

// ListTags returns one page of tags ordered by creation time.
func (s *Store) ListTags(ctx context.Context, req models.PageRequest) (models.Page[models.Tag], error) {
	if err := ctx.Err(); err != nil {
		return models.Page[models.Tag]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := slices.SortedFunc(maps.Values(s.tags), func(a, b models.Tag) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})
	for i := range all {
		all[i].Name = maps.Clone(all[i].Name)
	}
	return paginate(all, req), nil
}

// UpdateTag replaces the names of an existing tag.
func (s *Store) UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	if err := ctx.Err(); err != nil {
		return models.Tag{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tags[tag.ID]
	if !ok {
		return models.Tag{}, storage.ErrNotFound
	}
	existing.Name = maps.Clone(tag.Name)
	s.tags[tag.ID] = existing
	existing.Name = maps.Clone(existing.Name)
	return existing, nil
}

// DeleteTag removes a tag.
func (s *Store) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tags, id)
	return nil
}

func paginate[T any](all []T, req models.PageRequest) models.Page[T] {
	req = req.Normalize()
	page := models.Page[T]{Page: req.Page, Size: req.Size, Total: int64(len(all)), Items: []T{}}
	start := min(req.Offset(), len(all))
	end := min(start+req.Size, len(all))
	page.Items = append(page.Items, all[start:end]...)
	return page
}
