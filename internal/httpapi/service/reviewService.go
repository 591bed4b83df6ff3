package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

var (
	ErrReviewExists = errors.New("you have already reviewed this title")
	ErrForbidden    = errors.New("you don't have permission to modify this resource")
)

// TitleGetter is the slice of the title repository the review service needs.
type TitleGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Title, error)
}

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, id int64) (*models.Review, error)
	Create(ctx context.Context, titleID int64, authorID string, in dto.ReviewRequest) (*models.Review, error)
	Update(ctx context.Context, titleID, id int64, actorID string, actorRole models.Role, in dto.ReviewUpdateRequest) (*models.Review, error)
	Delete(ctx context.Context, titleID, id int64, actorID string, actorRole models.Role) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  TitleGetter
}

func NewReviewService(reviews repository.ReviewRepository, titles TitleGetter) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.GetByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	return s.reviews.GetByID(ctx, titleID, id)
}

// Create sets the author server-side and enforces one review per title and
// author. The check runs before the insert for a clean message; the composite
// unique index backs it up under concurrency.
func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, in dto.ReviewRequest) (*models.Review, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviews.GetByTitleAndAuthor(ctx, titleID, authorID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reload so the author association is populated
	return s.reviews.GetByID(ctx, titleID, review.ID)
}

// canModify is the object-level author/moderator/admin check.
func canModify(authorID, actorID string, actorRole models.Role) bool {
	return authorID == actorID || actorRole.CanModerate()
}

func (s *reviewService) Update(ctx context.Context, titleID, id int64, actorID string, actorRole models.Role, in dto.ReviewUpdateRequest) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if !canModify(review.AuthorID, actorID, actorRole) {
		return nil, ErrForbidden
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		review.Score = *in.Score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, titleID, id)
}

func (s *reviewService) Delete(ctx context.Context, titleID, id int64, actorID string, actorRole models.Role) error {
	review, err := s.reviews.GetByID(ctx, titleID, id)
	if err != nil {
		return err
	}
	if !canModify(review.AuthorID, actorID, actorRole) {
		return ErrForbidden
	}
	return s.reviews.Delete(ctx, titleID, id)
}
