package dto

// Data Transfer Objects for the sign-up and token-exchange endpoints

// SignupRequest: payload for POST /api/v1/auth/signup
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the accepted fields; the confirmation code itself only
// travels out-of-band.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for POST /api/v1/auth/token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	Token string `json:"token"`
}
