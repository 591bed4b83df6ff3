package dto

import "reviewhub/internal/httpapi/models"

// GenreRequest used for POST /api/v1/genres
type GenreRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d GenreRequest) ToModel() models.Genre {
	return models.Genre{Name: d.Name, Slug: d.Slug}
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
