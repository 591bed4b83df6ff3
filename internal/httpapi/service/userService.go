package service

import (
	"context"
	"errors"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validate"
)

var (
	ErrInvalidRole = errors.New("role must be one of: user, moderator, admin")
	// ErrUserConflict covers a store-level unique violation where the
	// offending column (username or email) is not worth distinguishing.
	ErrUserConflict = errors.New("username or email already in use")
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, in dto.UserRequest) (*models.User, error)
	Update(ctx context.Context, username string, in dto.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateProfile updates the caller's own record; role changes are ignored.
	UpdateProfile(ctx context.Context, userID string, in dto.ProfileUpdateRequest) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create is the admin path; unlike sign-up the role is assignable.
func (s *userService) Create(ctx context.Context, in dto.UserRequest) (*models.User, error) {
	if err := validate.Username(in.Username); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Bio:      in.Bio,
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, in dto.UserUpdateRequest) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := validate.Username(*in.Username); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return s.repo.DeleteByUsername(ctx, username)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in dto.ProfileUpdateRequest) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := validate.Username(*in.Username); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	// in.Role is deliberately dropped: callers cannot change their own role

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return user, nil
}
