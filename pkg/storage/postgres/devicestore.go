package postgres

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormDevicesStore struct {
	db      *gorm.DB
	querier *gormDBQuerier[models.Device]
}

func NewDevicesRepository(logger *logrus.Entry, db *gorm.DB) (storage.DevicesRepo, error) {
	querier, err := TableQuery(logger, db, "devices", "id", models.Device{})
	if err != nil {
		return nil, err
	}

	return &GormDevicesStore{
		db:      db,
		querier: querier,
	}, nil
}

func (db *GormDevicesStore) Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error) {
	filters := []resources.FilterOption{}
	if queryParams != nil {
		filters = queryParams.Filters
	}
	return db.querier.CountFiltered(ctx, filters, []gormExtraOps{})
}

func (db *GormDevicesStore) SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Device), queryParams *resources.QueryParameters) (string, error) {
	return db.querier.SelectAll(ctx, queryParams, []gormExtraOps{}, exhaustiveRun, applyFunc)
}

func (db *GormDevicesStore) SelectByOwner(ctx context.Context, ownerUserID string, exhaustiveRun bool, applyFunc func(models.Device), queryParams *resources.QueryParameters) (string, error) {
	opts := []gormExtraOps{
		{query: "owner_user_id = ?", additionalWhere: []any{ownerUserID}},
	}
	return db.querier.SelectAll(ctx, queryParams, opts, exhaustiveRun, applyFunc)
}

func (db *GormDevicesStore) SelectExists(ctx context.Context, ID string) (bool, *models.Device, error) {
	return db.querier.SelectExists(ctx, ID, nil)
}

func (db *GormDevicesStore) SelectExistsByPublicID(ctx context.Context, publicID string) (bool, *models.Device, error) {
	queryCol := "public_id"
	return db.querier.SelectExists(ctx, publicID, &queryCol)
}

func (db *GormDevicesStore) Insert(ctx context.Context, device *models.Device) (*models.Device, error) {
	return db.querier.Insert(ctx, device)
}

func (db *GormDevicesStore) Update(ctx context.Context, device *models.Device) (*models.Device, error) {
	return db.querier.Update(ctx, device, device.ID)
}

func (db *GormDevicesStore) Delete(ctx context.Context, ID string) error {
	return db.querier.Delete(ctx, ID)
}

// Single conditional UPDATE so two concurrent claims cannot both win. A
// successful claim also activates the device.
func (db *GormDevicesStore) UpdateOwnerIfUnclaimed(ctx context.Context, ID string, ownerUserID string) (bool, error) {
	tx := db.db.Table("devices").WithContext(ctx).
		Where("id = ? AND owner_user_id IS NULL", ID).
		Updates(map[string]any{
			"owner_user_id": ownerUserID,
			"status":        models.DeviceActive,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// ClearOwnerIfOwnedBy is the release counterpart: a single conditional
// UPDATE touching only the owner column, so it cannot revert a racing
// liveness update. Returns false when the caller does not own the device.
func (db *GormDevicesStore) ClearOwnerIfOwnedBy(ctx context.Context, ID string, ownerUserID string) (bool, error) {
	tx := db.db.Table("devices").WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", ID, ownerUserID).
		Update("owner_user_id", nil)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (db *GormDevicesStore) TouchLiveness(ctx context.Context, ID string, status models.DeviceStatus, seenAt time.Time) error {
	tx := db.db.Table("devices").WithContext(ctx).
		Where("id = ?", ID).
		Updates(map[string]any{
			"status":    status,
			"last_seen": seenAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected != 1 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
