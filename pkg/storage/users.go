package storage

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
)

type UsersRepo interface {
	SelectExists(ctx context.Context, ID string) (bool, *models.User, error)
	SelectExistsByEmail(ctx context.Context, email string) (bool, *models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
