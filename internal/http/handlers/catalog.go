package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/models/dto"
	"github.com/hongminglow/catalog-be/internal/validation"
)

// Catalog is the category and tag use-case surface.
type Catalog interface {
	CreateCategory(ctx context.Context, name, description string) (models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error)
	ListCategories(ctx context.Context, page models.PageRequest) (models.Page[models.Category], error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateTag(ctx context.Context, names map[string]string) (models.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error)
	ListTags(ctx context.Context, page models.PageRequest) (models.Page[models.Tag], error)
	UpdateTag(ctx context.Context, id uuid.UUID, names map[string]string) (models.Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler exposes category and tag CRUD.
type CatalogHandler struct {
	catalog  Catalog
	validate *validation.Validator
}

// NewCatalogHandler builds a CatalogHandler over catalog.
func NewCatalogHandler(catalog Catalog, validate *validation.Validator) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, validate: validate}
}

// Register attaches the category and tag routes to mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /categories", h.createCategory)
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("GET /categories/{id}", h.getCategory)
	mux.HandleFunc("DELETE /categories/{id}", h.deleteCategory)

	mux.HandleFunc("POST /tags", h.createTag)
	mux.HandleFunc("GET /tags", h.listTags)
	mux.HandleFunc("GET /tags/{id}", h.getTag)
	mux.HandleFunc("PUT /tags/{id}", h.updateTag)
	mux.HandleFunc("DELETE /tags/{id}", h.deleteTag)
}

func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := h.decode(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, category)
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	out, err := h.catalog.ListCategories(r.Context(), page)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, out)
}

func (h *CatalogHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, category)
}

func (h *CatalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		respond.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) createTag(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if err := h.decode(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	tag, err := h.catalog.CreateTag(r.Context(), req.Name)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, tag)
}

func (h *CatalogHandler) listTags(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	out, err := h.catalog.ListTags(r.Context(), page)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, out)
}

func (h *CatalogHandler) getTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	tag, err := h.catalog.GetTag(r.Context(), id)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tag)
}

func (h *CatalogHandler) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	var req dto.TagRequest
	if err := h.decode(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	tag, err := h.catalog.UpdateTag(r.Context(), id, req.Name)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tag)
}

func (h *CatalogHandler) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	if err := h.catalog.DeleteTag(r.Context(), id); err != nil {
		respond.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}
