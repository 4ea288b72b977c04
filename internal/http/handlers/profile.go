package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/models/dto"
)

// IdentityLookup loads identities by ID.
type IdentityLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.Identity, error)
}

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	identities IdentityLookup
}

// NewProfileHandler builds a ProfileHandler over identities.
func NewProfileHandler(identities IdentityLookup) *ProfileHandler {
	return &ProfileHandler{identities: identities}
}

// Register attaches the profile route to mux.
func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users/me", h.handleMe)
}

func (h *ProfileHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respond.Fail(w, r, auth.ErrMissingToken)
		return
	}
	id, err := uuid.Parse(principal.Subject)
	if err != nil {
		respond.Fail(w, r, auth.ErrTokenMalformed)
		return
	}
	identity, err := h.identities.FindByID(r.Context(), id)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, dto.NewProfile(identity))
}
