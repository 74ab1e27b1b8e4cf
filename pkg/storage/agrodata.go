package storage

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type CropsRepo interface {
	SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Crop), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.Crop, error)
	SelectExistsByName(ctx context.Context, name string) (bool, *models.Crop, error)
	Insert(ctx context.Context, crop *models.Crop) (*models.Crop, error)
	Update(ctx context.Context, crop *models.Crop) (*models.Crop, error)
	Delete(ctx context.Context, ID string) error
}

type DiseasesRepo interface {
	SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Disease), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.Disease, error)
	Insert(ctx context.Context, disease *models.Disease) (*models.Disease, error)
	Update(ctx context.Context, disease *models.Disease) (*models.Disease, error)
	Delete(ctx context.Context, ID string) error
}

type SoilTypesRepo interface {
	SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.SoilType), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.SoilType, error)
	Insert(ctx context.Context, soil *models.SoilType) (*models.SoilType, error)
	Update(ctx context.Context, soil *models.SoilType) (*models.SoilType, error)
	Delete(ctx context.Context, ID string) error
}

type ScheduleRulesRepo interface {
	SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.ScheduleRule), queryParams *resources.QueryParameters) (string, error)
	SelectByCrop(ctx context.Context, cropID string, exhaustiveRun bool, applyFunc func(models.ScheduleRule), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.ScheduleRule, error)
	Insert(ctx context.Context, rule *models.ScheduleRule) (*models.ScheduleRule, error)
	Update(ctx context.Context, rule *models.ScheduleRule) (*models.ScheduleRule, error)
	Delete(ctx context.Context, ID string) error
}
