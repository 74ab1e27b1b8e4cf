package models

import (
	"time"
)

type DeviceStatus string

const (
	DeviceInactive    DeviceStatus = "INACTIVE"
	DeviceActive      DeviceStatus = "ACTIVE"
	DeviceMaintenance DeviceStatus = "MAINTENANCE"
)

// Device is a registered telemetry source. PublicID is the opaque identifier
// the physical device (and real-time subscribers) use to address it; ID is the
// internal storage identity and never leaves the backend. OwnerUserID stays
// nil until an account claims the device.
type Device struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	PublicID          string         `json:"public_id" gorm:"uniqueIndex"`
	Name              string         `json:"name"`
	Status            DeviceStatus   `json:"status"`
	OwnerUserID       *string        `json:"owner_user_id,omitempty"`
	Tags              []string       `json:"tags" gorm:"serializer:json"`
	Metadata          map[string]any `json:"metadata" gorm:"serializer:json"`
	LastSeen          *time.Time     `json:"last_seen,omitempty"`
	CreationTimestamp time.Time      `json:"creation_timestamp"`
}

type DevicesStats struct {
	TotalDevices  int                  `json:"total"`
	DevicesStatus map[DeviceStatus]int `json:"status_distribution"`
}
