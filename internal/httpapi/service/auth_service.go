package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/validate"
	"reviewhub/internal/mail"
)

var (
	ErrUsernameTaken = errors.New("username already registered with a different email")
	ErrEmailTaken    = errors.New("email already registered with a different username")
	ErrInvalidCode   = errors.New("invalid confirmation code")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims is the payload of an issued access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SignUp registers a user (or re-issues a code for an existing
	// username+email pair) and dispatches a confirmation code out-of-band.
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a username and confirmation code for an access token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          CodeStore
	sender         mail.Sender
	logger         *slog.Logger
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes CodeStore,
	sender mail.Sender,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		sender:         sender,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// SignUp implements the unregistered -> pending-confirmation transition.
// Retrying with an identical username+email pair re-issues a fresh code; a
// username or email held by a different pairing is a conflict.
func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if err := validate.Username(username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, ErrUsernameTaken
		}
		// idempotent retry: same pair, new code
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &models.User{Username: username, Email: email, Role: models.RoleUser}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// a concurrent signup can still lose the race at the store
			if repository.IsUniqueViolation(err) {
				return nil, ErrUsernameTaken
			}
			return nil, err
		}
	default:
		return nil, err
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, err
	}
	if err := s.codes.Issue(ctx, user.ID, code); err != nil {
		return nil, err
	}

	// Best-effort dispatch: the user row and code are already committed, a
	// failed send must not undo them.
	if err := s.sender.SendConfirmationCode(user.Email, code); err != nil {
		s.logger.Warn("confirmation email dispatch failed",
			"username", user.Username, "error", err)
	}

	return user, nil
}

// IssueToken implements the pending-confirmation -> confirmed transition.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	if err := validate.Username(username); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	ok, err := s.codes.Consume(ctx, user.ID, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// generateConfirmationCode returns an 8-digit numeric code.
func generateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", n.Int64()), nil
}
