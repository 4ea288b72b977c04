package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// IdentityStore persists registered accounts. Lookups return ErrNotFound when
// nothing matches; Save returns ErrAlreadyExists when a unique column
// (email, phone, username) collides.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (models.Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Identity, error)
	Save(ctx context.Context, identity models.Identity) (models.Identity, error)
}

// CategoryStore persists catalog categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error)
	ListCategories(ctx context.Context, page models.PageRequest) (models.Page[models.Category], error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// TagStore persists catalog tags.
type TagStore interface {
	CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error)
	ListTags(ctx context.Context, page models.PageRequest) (models.Page[models.Tag], error)
	UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

// Store is the full persistence surface the server is built from.
type Store interface {
	IdentityStore
	CategoryStore
	TagStore
	Close()
}
