package service

import (
	"context"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/middleware"
	"coldstore/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users      repository.UserRepository
	jwtSecret  string
	expiration time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, expirationHours int) AuthService {
	return &authService{
		users:      users,
		jwtSecret:  jwtSecret,
		expiration: time.Duration(expirationHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same message for unknown user and bad password.
		return nil, domainerr.Validation("credentials", "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domainerr.Validation("credentials", "invalid username or password")
	}

	expiresAt := time.Now().Add(s.expiration)
	claims := &middleware.JWTClaims{
		UserID:      user.ID.String(),
		Username:    user.Username,
		AccessLevel: user.AccessLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:       signed,
		Name:        user.Name,
		AccessLevel: user.AccessLevel,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}
