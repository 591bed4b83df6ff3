package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// ratingSelect pulls the mean review score alongside each title row so the
// rating is always computed at read time.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows the title list. All fields combine with AND.
type TitleFilter struct {
	Genre    string // genre slug, exact
	Category string // category slug, exact
	Year     *int   // exact release year
	Name     string // case-insensitive substring
}

type TitleRepo struct {
	db *gorm.DB
}

func NewTitleRepo(db *gorm.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

func (r *TitleRepo) filtered(ctx context.Context, f TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if f.Genre != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", f.Genre)
	}
	if f.Category != "" {
		q = q.Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", f.Category)
	}
	if f.Year != nil {
		q = q.Where("titles.year = ?", *f.Year)
	}
	if f.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+f.Name+"%")
	}
	return q
}

func (r *TitleRepo) List(ctx context.Context, f TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	if err := r.filtered(ctx, f).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.filtered(ctx, f).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Order("titles.year desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

func (r *TitleRepo) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TitleRepo) Create(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

// Update saves the title and replaces its genre association set.
func (r *TitleRepo) Update(ctx context.Context, t *models.Title) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit("Genres").Save(t).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("update title: %w", err)
	}
	if t.Genres != nil {
		if err := tx.Model(t).Association("Genres").Replace(t.Genres); err != nil {
			tx.Rollback()
			return fmt.Errorf("replace title genres: %w", err)
		}
	}
	return tx.Commit().Error
}

func (r *TitleRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
