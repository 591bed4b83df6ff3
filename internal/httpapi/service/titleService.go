package service

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validate"
)

// SlugError marks an unresolved category or genre slug in a title payload.
type SlugError struct {
	Field string
	Slug  string
}

func (e *SlugError) Error() string {
	return fmt.Sprintf("unknown %s slug %q", e.Field, e.Slug)
}

type TitleService interface {
	List(ctx context.Context, f repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in dto.TitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, in dto.TitleUpdateRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

// TitleStore is the slice of the title repository the service needs.
type TitleStore interface {
	List(ctx context.Context, f repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	Delete(ctx context.Context, id int64) error
}

// CategoryResolver looks up a category by its external slug.
type CategoryResolver interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// GenreResolver looks up genres by slug; the second return names the first
// slug that did not resolve.
type GenreResolver interface {
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, string, error)
}

type titleService struct {
	titles     TitleStore
	categories CategoryResolver
	genres     GenreResolver
}

func NewTitleService(titles TitleStore, categories CategoryResolver, genres GenreResolver) TitleService {
	return &titleService{titles: titles, categories: categories, genres: genres}
}

func (s *titleService) List(ctx context.Context, f repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titles.List(ctx, f, page, pageSize)
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	return s.titles.GetByID(ctx, id)
}

// resolveCategory maps a category slug to its id.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*int64, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, &SlugError{Field: "category", Slug: slug}
	}
	return &c.ID, nil
}

// resolveGenres maps genre slugs to genre rows; every slug must resolve.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	list, missing, err := s.genres.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if missing != "" {
		return nil, &SlugError{Field: "genre", Slug: missing}
	}
	return list, nil
}

func (s *titleService) Create(ctx context.Context, in dto.TitleRequest) (*models.Title, error) {
	if err := validate.Year(in.Year); err != nil {
		return nil, err
	}

	title := models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != nil {
		id, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = id
	}

	genres, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, &title); err != nil {
		return nil, err
	}
	// reload for nested category/genres and the rating field
	return s.titles.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, in dto.TitleUpdateRequest) (*models.Title, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validate.Year(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.Category != nil {
		categoryID, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	if in.Genre != nil {
		genres, err := s.resolveGenres(ctx, in.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	} else {
		// leave the association set untouched
		title.Genres = nil
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return s.titles.Delete(ctx, id)
}
