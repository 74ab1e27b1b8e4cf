package resources

import (
	"github.com/agrosense/agrosense/pkg/models"
)

type RegisterDeviceBody struct {
	PublicID string         `json:"public_id"`
	Name     string         `json:"name"`
	Tags     []string       `json:"tags"`
	Metadata map[string]any `json:"metadata"`
}

type UpdateDeviceStatusBody struct {
	Status models.DeviceStatus `json:"status"`
}
