package dto

// CategoryRequest is the body of POST /categories.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// TagRequest carries tag names keyed by language code, e.g. {"en": "Fiction"}.
type TagRequest struct {
	Name map[string]string `json:"name" validate:"required,min=1,dive,keys,required,max=8,endkeys,required,max=255"`
}
