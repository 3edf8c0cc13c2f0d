package categories

import (
	"github.com/arbrands/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// UpsertCategoryRequest is shared by create and update: both are full-field
// writes of name and slug.
type UpsertCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}

func FromModels(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
