package dto

import "reviewhub/internal/httpapi/models"

// UserRequest used for admin POST /api/v1/users
type UserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Bio      string `json:"bio,omitempty" binding:"omitempty,max=255"`
	Role     string `json:"role,omitempty"`
}

// UserUpdateRequest used for admin PATCH /api/v1/users/:username
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,max=150"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=255"`
	Role     *string `json:"role,omitempty"`
}

// ProfileUpdateRequest used for PATCH /api/v1/users/me. A role field in the
// payload is accepted but never applied.
type ProfileUpdateRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,max=150"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	Bio      *string `json:"bio,omitempty" binding:"omitempty,max=255"`
	Role     *string `json:"role,omitempty"`
}

type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

func UserFromModel(u models.User) UserResponse {
	return UserResponse{
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
		Role:     string(u.Role),
	}
}
