package postgres

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormTelemetryStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.TelemetrySample]
}

func NewTelemetryRepository(logger *logrus.Entry, db *gorm.DB) (storage.TelemetryRepo, error) {
	querier, err := TableQuery(logger, db, "telemetry_samples", "id", models.TelemetrySample{})
	if err != nil {
		return nil, err
	}

	return &GormTelemetryStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormTelemetryStore) Insert(ctx context.Context, sample *models.TelemetrySample) (*models.TelemetrySample, error) {
	return db.querier.Insert(ctx, sample)
}

func (db *GormTelemetryStore) SelectLatest(ctx context.Context, deviceID string) (bool, *models.TelemetrySample, error) {
	var sample models.TelemetrySample
	tx := db.db.Table("telemetry_samples").WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("creation_timestamp DESC").
		Limit(1).
		Find(&sample)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		return false, nil, nil
	}

	return true, &sample, nil
}

func (db *GormTelemetryStore) SelectRange(ctx context.Context, deviceID string, from, to *time.Time, limit int) ([]models.TelemetrySample, error) {
	tx := db.db.Table("telemetry_samples").WithContext(ctx).
		Where("device_id = ?", deviceID)

	if from != nil {
		tx = tx.Where("creation_timestamp >= ?", *from)
	}

	if to != nil {
		tx = tx.Where("creation_timestamp <= ?", *to)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var samples []models.TelemetrySample
	tx = tx.Order("creation_timestamp DESC").Find(&samples)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return samples, nil
}

func (db *GormTelemetryStore) DeleteByDevice(ctx context.Context, deviceID string) error {
	tx := db.db.Table("telemetry_samples").WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&models.TelemetrySample{})

	return tx.Error
}
