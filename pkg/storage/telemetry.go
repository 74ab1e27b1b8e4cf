package storage

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
)

type TelemetryRepo interface {
	// Insert appends one sample. Samples are never updated afterwards.
	Insert(ctx context.Context, sample *models.TelemetrySample) (*models.TelemetrySample, error)

	// SelectLatest returns the most recent sample by creation timestamp, or
	// (false, nil, nil) when the device has no samples yet.
	SelectLatest(ctx context.Context, deviceID string) (bool, *models.TelemetrySample, error)

	// SelectRange returns samples whose creation timestamp falls within the
	// inclusive [from, to] bounds (either may be nil for an open bound),
	// ordered most-recent-first, capped at limit.
	SelectRange(ctx context.Context, deviceID string, from, to *time.Time, limit int) ([]models.TelemetrySample, error)

	// DeleteByDevice removes all samples of a device. Only used when the
	// device itself is deleted (cascade); there is no per-sample delete.
	DeleteByDevice(ctx context.Context, deviceID string) error
}
