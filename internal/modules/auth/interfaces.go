package auth

import (
	"context"

	"roombooking/internal/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
