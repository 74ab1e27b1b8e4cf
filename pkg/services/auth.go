package services

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	ParseAndVerify(ctx context.Context, token string) (*TokenClaims, error)
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Password string `validate:"required,min=8"`
	Role     models.UserRole
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	Token string
	User  *models.User
}

type TokenClaims struct {
	UserID string
	Role   models.UserRole
}
