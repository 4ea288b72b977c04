package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hongminglow/catalog-be/internal/models"
	"github.com/hongminglow/catalog-be/internal/validation"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return validation.Field("body", "is too large")
		case errors.Is(err, io.EOF):
			return validation.Field("body", "is required")
		default:
			return validation.Field("body", "must be a valid JSON object")
		}
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, validation.Field("id", "must be a valid UUID")
	}
	return id, nil
}

// pageRequest reads page and size from the query string. Missing values take
// the listing defaults.
func pageRequest(r *http.Request) (models.PageRequest, error) {
	var req models.PageRequest
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &req.Page}, {"size", &req.Size}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return models.PageRequest{}, validation.Field(p.name, "must be a positive integer")
		}
		*p.dst = n
	}
	if req.Page > models.MaxPage {
		return models.PageRequest{}, validation.Field("page", fmt.Sprintf("must be at most %d", models.MaxPage))
	}
	return req.Normalize(), nil
}
