package service

import (
	"context"
	"errors"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validate"
)

var ErrSlugTaken = errors.New("slug already in use")

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, c *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.CategoryRepo
}

func NewCategoryService(r *repository.CategoryRepo) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.GetAll(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.New("category name required")
	}
	if err := validate.Slug(c.Slug); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}
