package services

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type DeviceManagerService interface {
	GetDevicesStats(ctx context.Context, input GetDevicesStatsInput) (*models.DevicesStats, error)
	CreateDevice(ctx context.Context, input CreateDeviceInput) (*models.Device, error)
	GetDevices(ctx context.Context, input GetDevicesInput) (string, error)
	GetDevicesByOwner(ctx context.Context, input GetDevicesByOwnerInput) (string, error)
	GetDeviceByID(ctx context.Context, input GetDeviceByIDInput) (*models.Device, error)
	GetDeviceByPublicID(ctx context.Context, input GetDeviceByPublicIDInput) (*models.Device, error)
	UpdateDeviceStatus(ctx context.Context, input UpdateDeviceStatusInput) (*models.Device, error)
	ClaimDevice(ctx context.Context, input ClaimDeviceInput) (*models.Device, error)
	ReleaseDevice(ctx context.Context, input ReleaseDeviceInput) (*models.Device, error)
	DeleteDevice(ctx context.Context, input DeleteDeviceInput) error
}

type GetDevicesStatsInput struct {
	QueryParameters *resources.QueryParameters
}

type CreateDeviceInput struct {
	PublicID string `validate:"required"`
	Name     string `validate:"required"`
	Tags     []string
	Metadata map[string]any
}

type GetDevicesInput struct {
	resources.ListInput[models.Device]
}

type GetDevicesByOwnerInput struct {
	OwnerUserID string `validate:"required"`
	resources.ListInput[models.Device]
}

type GetDeviceByIDInput struct {
	ID string `validate:"required"`
}

type GetDeviceByPublicIDInput struct {
	PublicID string `validate:"required"`
}

type UpdateDeviceStatusInput struct {
	ID        string              `validate:"required"`
	NewStatus models.DeviceStatus `validate:"required"`
}

type ClaimDeviceInput struct {
	ID     string `validate:"required"`
	UserID string `validate:"required"`
}

type ReleaseDeviceInput struct {
	ID     string `validate:"required"`
	UserID string `validate:"required"`
}

type DeleteDeviceInput struct {
	ID string `validate:"required"`
}
