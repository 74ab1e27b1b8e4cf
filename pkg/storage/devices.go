package storage

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type DevicesRepo interface {
	Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error)
	SelectAll(ctx context.Context, exhaustiveRun bool, applyFunc func(models.Device), queryParams *resources.QueryParameters) (string, error)
	SelectByOwner(ctx context.Context, ownerUserID string, exhaustiveRun bool, applyFunc func(models.Device), queryParams *resources.QueryParameters) (string, error)
	SelectExists(ctx context.Context, ID string) (bool, *models.Device, error)
	SelectExistsByPublicID(ctx context.Context, publicID string) (bool, *models.Device, error)
	Insert(ctx context.Context, device *models.Device) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) (*models.Device, error)
	Delete(ctx context.Context, ID string) error

	// UpdateOwnerIfUnclaimed atomically sets the owner of an unclaimed device
	// and marks it active (single-row conditional update: claim races resolve
	// to exactly one winner). Returns false when the device is already owned.
	UpdateOwnerIfUnclaimed(ctx context.Context, ID string, ownerUserID string) (bool, error)

	// ClearOwnerIfOwnedBy atomically clears the owner, but only when the
	// given user holds the claim. Returns false otherwise.
	ClearOwnerIfOwnedBy(ctx context.Context, ID string, ownerUserID string) (bool, error)

	// TouchLiveness updates last-seen and status in one write. Concurrent
	// ingests race last-write-wins, which is fine for an idempotent update.
	TouchLiveness(ctx context.Context, ID string, status models.DeviceStatus, seenAt time.Time) error
}
