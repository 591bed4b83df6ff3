package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validate"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, g *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	repo *repository.GenreRepo
}

func NewGenreService(r *repository.GenreRepo) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, g *models.Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return errors.New("genre name required")
	}
	if err := validate.Slug(g.Slug); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, g); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}
