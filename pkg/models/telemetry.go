package models

import (
	"time"
)

// TelemetrySample is one (temperature, humidity) reading. Samples are
// append-only: once written they are never updated, and they are only removed
// by cascading device deletion. CreationTimestamp is server-assigned and is
// the ordering key for "latest", history and aggregation queries; ReadingTime
// is whatever the device reported (or the ingestion time when it reported
// none).
type TelemetrySample struct {
	ID                uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	DeviceID          string    `json:"device_id" gorm:"index"`
	OwnerUserID       *string   `json:"owner_user_id,omitempty"`
	Temperature       float64   `json:"temperature"`
	Humidity          float64   `json:"humidity"`
	ReadingTime       time.Time `json:"reading_time"`
	CreationTimestamp time.Time `json:"creation_timestamp" gorm:"index"`
}

// SensorUpdate is the broadcast payload handed to real-time subscribers. The
// device identity is denormalized to its public form: subscribers address
// devices by the identifier they know, not by the internal storage id.
type SensorUpdate struct {
	Sample         TelemetrySample `json:"sample"`
	PublicDeviceID string          `json:"publicDeviceId"`
	DeviceName     string          `json:"deviceName"`
}

type StatSummary struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HourlyBucket aggregates the samples whose creation timestamp falls within
// [BucketStart, BucketStart+1h). Buckets with zero samples are never emitted.
type HourlyBucket struct {
	BucketStart time.Time   `json:"bucket_start"`
	SampleCount int         `json:"sample_count"`
	Temperature StatSummary `json:"temperature"`
	Humidity    StatSummary `json:"humidity"`
}
