package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roombooking/internal/domain"
	"roombooking/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// Service is the identity collaborator: it turns credentials into the bearer
// token whose user id the booking routes act on behalf of.
type Service struct {
	users UserRepository
	jwt   *jwt.Service
}

func NewService(users UserRepository, jwtService *jwt.Service) *Service {
	return &Service{users: users, jwt: jwtService}
}

func (s *Service) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(s.jwt.TTL()).UTC(),
		User: UserPublic{
			ID:    user.ID,
			Role:  string(user.Role),
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
