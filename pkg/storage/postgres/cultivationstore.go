package postgres

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormCultivationPlansStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.CultivationPlan]
}

func NewCultivationPlansRepository(logger *logrus.Entry, db *gorm.DB) (storage.CultivationPlansRepo, error) {
	querier, err := TableQuery(logger, db, "cultivation_plans", "id", models.CultivationPlan{})
	if err != nil {
		return nil, err
	}

	return &GormCultivationPlansStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormCultivationPlansStore) SelectByOwner(ctx context.Context, ownerUserID string, exhaustiveRun bool, applyFunc func(models.CultivationPlan), queryParams *resources.QueryParameters) (string, error) {
	opts := []gormExtraOps{
		{query: "owner_user_id = ?", additionalWhere: []any{ownerUserID}},
	}
	return db.querier.SelectAll(ctx, queryParams, opts, exhaustiveRun, applyFunc)
}

func (db *GormCultivationPlansStore) SelectExists(ctx context.Context, ID string) (bool, *models.CultivationPlan, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormCultivationPlansStore) Insert(ctx context.Context, plan *models.CultivationPlan) (*models.CultivationPlan, error) {
	return db.querier.Insert(ctx, plan)
}

func (db *GormCultivationPlansStore) Update(ctx context.Context, plan *models.CultivationPlan) (*models.CultivationPlan, error) {
	return db.querier.Update(ctx, plan, plan.ID)
}

func (db *GormCultivationPlansStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}
