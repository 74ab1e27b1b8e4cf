package services

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
)

const (
	// MaxHistoryLimit caps how many samples a single history query returns.
	MaxHistoryLimit = 1000
	// DefaultHistoryLimit applies when the caller does not ask for a limit.
	DefaultHistoryLimit = 100

	// AggregationWindow is the trailing window hourly buckets are computed
	// over.
	AggregationWindow = 24 * time.Hour
)

type TelemetryService interface {
	IngestSample(ctx context.Context, input IngestSampleInput) (*models.SensorUpdate, error)
	GetLatest(ctx context.Context, input GetLatestInput) (*models.TelemetrySample, error)
	GetHistory(ctx context.Context, input GetHistoryInput) ([]models.TelemetrySample, error)
	GetHourlyAggregate(ctx context.Context, input GetHourlyAggregateInput) (*HourlyAggregateOutput, error)
}

// SensorEventPublisher is the slice of the event publishing surface the
// telemetry service needs. Publishing is fire-and-forget: implementations log
// their own failures and never propagate them.
type SensorEventPublisher interface {
	PublishCloudEvent(ctx context.Context, payload interface{})
}

type IngestSampleInput struct {
	PublicDeviceID string `validate:"required"`
	Temperature    float64
	Humidity       float64
	ReadingTime    *time.Time
}

type GetLatestInput struct {
	PublicDeviceID string `validate:"required"`
}

type GetHistoryInput struct {
	PublicDeviceID string `validate:"required"`
	From           *time.Time
	To             *time.Time
	Limit          int
}

type GetHourlyAggregateInput struct {
	PublicDeviceID string `validate:"required"`
}

type HourlyAggregateOutput struct {
	Device  *models.Device
	Buckets []models.HourlyBucket
}
