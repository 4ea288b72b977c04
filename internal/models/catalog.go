package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Category groups catalog entries.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tag is a label with one display name per language code.
type Tag struct {
	ID        uuid.UUID         `json:"id"`
	Name      map[string]string `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
}

// Paging bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Offset from overflowing at the largest page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest selects one page of a listing. Page numbers start at 1.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request into valid bounds.
func (r PageRequest) Normalize() PageRequest {
	switch {
	case r.Page < 1:
		r.Page = 1
	case r.Page > MaxPage:
		r.Page = MaxPage
	}
	switch {
	case r.Size < 1:
		r.Size = DefaultPageSize
	case r.Size > MaxPageSize:
		r.Size = MaxPageSize
	}
	return r
}

// Offset returns the number of rows preceding the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}
