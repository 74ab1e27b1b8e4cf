package postgres

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormCropsStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.Crop]
}

func NewCropsRepository(logger *logrus.Entry, db *gorm.DB) (storage.CropsRepo, error) {
	querier, err := TableQuery(logger, db, "crops", "id", models.Crop{})
	if err != nil {
		return nil, err
	}

	return &GormCropsStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormCropsStore) SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Crop), queryParams *resources.QueryParameters) (string, error) {
	return db.querier.SelectAll(ctx, queryParams, []gormExtraOps{}, exhaustiveRun, applyFunc)
}

func (db *GormCropsStore) SelectExists(ctx context.Context, ID string) (bool, *models.Crop, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormCropsStore) SelectExistsByName(ctx context.Context, name string) (bool, *models.Crop, error) {
	queryCol := "name"
	return db.querier.SelectExists(ctx, name, &queryCol)
}

func (db *GormCropsStore) Insert(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	return db.querier.Insert(ctx, crop)
}

func (db *GormCropsStore) Update(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	return db.querier.Update(ctx, crop, crop.ID)
}

func (db *GormCropsStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}

type GormDiseasesStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.Disease]
}

func NewDiseasesRepository(logger *logrus.Entry, db *gorm.DB) (storage.DiseasesRepo, error) {
	querier, err := TableQuery(logger, db, "diseases", "id", models.Disease{})
	if err != nil {
		return nil, err
	}

	return &GormDiseasesStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormDiseasesStore) SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Disease), queryParams *resources.QueryParameters) (string, error) {
	return db.querier.SelectAll(ctx, queryParams, []gormExtraOps{}, exhaustiveRun, applyFunc)
}

func (db *GormDiseasesStore) SelectExists(ctx context.Context, ID string) (bool, *models.Disease, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormDiseasesStore) Insert(ctx context.Context, disease *models.Disease) (*models.Disease, error) {
	return db.querier.Insert(ctx, disease)
}

func (db *GormDiseasesStore) Update(ctx context.Context, disease *models.Disease) (*models.Disease, error) {
	return db.querier.Update(ctx, disease, disease.ID)
}

func (db *GormDiseasesStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}

type GormSoilTypesStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.SoilType]
}

func NewSoilTypesRepository(logger *logrus.Entry, db *gorm.DB) (storage.SoilTypesRepo, error) {
	querier, err := TableQuery(logger, db, "soil_types", "id", models.SoilType{})
	if err != nil {
		return nil, err
	}

	return &GormSoilTypesStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormSoilTypesStore) SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.SoilType), queryParams *resources.QueryParameters) (string, error) {
	return db.querier.SelectAll(ctx, queryParams, []gormExtraOps{}, exhaustiveRun, applyFunc)
}

func (db *GormSoilTypesStore) SelectExists(ctx context.Context, ID string) (bool, *models.SoilType, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormSoilTypesStore) Insert(ctx context.Context, soil *models.SoilType) (*models.SoilType, error) {
	return db.querier.Insert(ctx, soil)
}

func (db *GormSoilTypesStore) Update(ctx context.Context, soil *models.SoilType) (*models.SoilType, error) {
	return db.querier.Update(ctx, soil, soil.ID)
}

func (db *GormSoilTypesStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}

type GormScheduleRulesStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.ScheduleRule]
}

func NewScheduleRulesRepository(logger *logrus.Entry, db *gorm.DB) (storage.ScheduleRulesRepo, error) {
	querier, err := TableQuery(logger, db, "schedule_rules", "id", models.ScheduleRule{})
	if err != nil {
		return nil, err
	}

	return &GormScheduleRulesStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormScheduleRulesStore) SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.ScheduleRule), queryParams *resources.QueryParameters) (string, error) {
	return db.querier.SelectAll(ctx, queryParams, []gormExtraOps{}, exhaustiveRun, applyFunc)
}

func (db *GormScheduleRulesStore) SelectByCrop(ctx context.Context, cropID string, exhaustiveRun bool, applyFunc func(models.ScheduleRule), queryParams *resources.QueryParameters) (string, error) {
	opts := []gormExtraOps{
		{query: "crop_id = ?", additionalWhere: []any{cropID}},
	}
	return db.querier.SelectAll(ctx, queryParams, opts, exhaustiveRun, applyFunc)
}

func (db *GormScheduleRulesStore) SelectExists(ctx context.Context, ID string) (bool, *models.ScheduleRule, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormScheduleRulesStore) Insert(ctx context.Context, rule *models.ScheduleRule) (*models.ScheduleRule, error) {
	return db.querier.Insert(ctx, rule)
}

func (db *GormScheduleRulesStore) Update(ctx context.Context, rule *models.ScheduleRule) (*models.ScheduleRule, error) {
	return db.querier.Update(ctx, rule, rule.ID)
}

func (db *GormScheduleRulesStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}
