package dto

import "reviewhub/internal/httpapi/models"

// CategoryRequest used for POST /api/v1/categories
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// CategoryResponse identifies a category by slug; the numeric id stays internal.
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CategoryRequest) ToModel() models.Category {
	return models.Category{Name: d.Name, Slug: d.Slug}
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
