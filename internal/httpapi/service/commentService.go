package service

import (
	"context"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error)
	Create(ctx context.Context, titleID, reviewID int64, authorID, text string) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, id int64, actorID string, actorRole models.Role, in dto.CommentUpdateRequest) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, id int64, actorID string, actorRole models.Role) error
}

type commentService struct {
	comments *repository.CommentRepo
	reviews  repository.ReviewRepository
}

func NewCommentService(comments *repository.CommentRepo, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

// getReview checks that the review exists under the title from the URL path.
func (s *commentService) getReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.reviews.GetByID(ctx, titleID, reviewID)
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.getReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.GetByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error) {
	if _, err := s.getReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, reviewID, id)
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, authorID, text string) (*models.Comment, error) {
	if _, err := s.getReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, id int64, actorID string, actorRole models.Role, in dto.CommentUpdateRequest) (*models.Comment, error) {
	if _, err := s.getReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, reviewID, id)
	if err != nil {
		return nil, err
	}
	if !canModify(comment.AuthorID, actorID, actorRole) {
		return nil, ErrForbidden
	}

	if in.Text != nil {
		comment.Text = *in.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, reviewID, id)
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, id int64, actorID string, actorRole models.Role) error {
	if _, err := s.getReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, reviewID, id)
	if err != nil {
		return err
	}
	if !canModify(comment.AuthorID, actorID, actorRole) {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, reviewID, id)
}
