package resources

import (
	"time"

	"github.com/agrosense/agrosense/pkg/models"
)

// IngestTelemetryBody is the device-facing ingest payload. DeviceID carries
// the public device identity; ReadingTime is optional and defaults to the
// ingestion time.
type IngestTelemetryBody struct {
	DeviceID    string     `json:"deviceId"`
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidity"`
	ReadingTime *time.Time `json:"readingTime,omitempty"`
}

// SensorDataResponse is the envelope for the sensor endpoints: Data may be
// null for "no samples yet", which is a valid result, not an error.
type SensorDataResponse struct {
	Success bool                    `json:"success"`
	Data    *models.TelemetrySample `json:"data"`
}

type SensorHistoryResponse struct {
	Success bool                     `json:"success"`
	Data    []models.TelemetrySample `json:"data"`
}

type DeviceInfo struct {
	PublicID string              `json:"public_id"`
	Name     string              `json:"name"`
	Status   models.DeviceStatus `json:"status"`
}

type SensorAggregateResponse struct {
	Success    bool                  `json:"success"`
	Data       []models.HourlyBucket `json:"data"`
	DeviceInfo DeviceInfo            `json:"deviceInfo"`
}
