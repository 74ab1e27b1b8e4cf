package postgres

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormUsersStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.User]
}

func NewUsersRepository(logger *logrus.Entry, db *gorm.DB) (storage.UsersRepo, error) {
	querier, err := TableQuery(logger, db, "users", "id", models.User{})
	if err != nil {
		return nil, err
	}

	return &GormUsersStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormUsersStore) SelectExists(ctx context.Context, ID string) (bool, *models.User, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormUsersStore) SelectExistsByEmail(ctx context.Context, email string) (bool, *models.User, error) {
	queryCol := "email"
	return db.querier.SelectExists(ctx, email, &queryCol)
}

func (db *GormUsersStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	return db.querier.Insert(ctx, user)
}

func (db *GormUsersStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	return db.querier.Update(ctx, user, user.ID)
}
