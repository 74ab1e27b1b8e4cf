package storage

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type CultivationPlansRepo interface {
	SelectByOwner(ctx context.Context, ownerUserID string, exhaustiveRun bool, applyFunc func(models.CultivationPlan), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.CultivationPlan, error)
	Insert(ctx context.Context, plan *models.CultivationPlan) (*models.CultivationPlan, error)
	Update(ctx context.Context, plan *models.CultivationPlan) (*models.CultivationPlan, error)
	Delete(ctx context.Context, ID string) error
}
