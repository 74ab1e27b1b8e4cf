package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDeviceManager(t *testing.T) (DeviceManagerService, TelemetryService) {
	t.Helper()

	logger := helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest")
	engine, err := postgres.NewStorageEngine(logger, config.PluggableStorageEngine{
		Provider: config.SQLite,
		SQLite: config.SQLitePSEConfig{
			DatabasePath: filepath.Join(t.TempDir(), "devices-svc.db"),
		},
	})
	require.NoError(t, err)

	devRepo, err := engine.GetDevicesStorage()
	require.NoError(t, err)
	telRepo, err := engine.GetTelemetryStorage()
	require.NoError(t, err)

	devices := NewDeviceManagerService(DeviceManagerBuilder{
		Logger:           logger,
		DevicesStorage:   devRepo,
		TelemetryStorage: telRepo,
	})

	telemetry := NewTelemetryService(TelemetryBuilder{
		Logger:           logger,
		DevicesStorage:   devRepo,
		TelemetryStorage: telRepo,
	})

	return devices, telemetry
}

func TestCreateDevice(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	device, err := devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "north greenhouse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, device.ID)
	assert.Equal(t, models.DeviceInactive, device.Status)
	assert.Nil(t, device.OwnerUserID)
	assert.Nil(t, device.LastSeen)

	_, err = devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "duplicate",
	})
	assert.ErrorIs(t, err, errs.ErrDeviceAlreadyExists)

	_, err = devices.CreateDevice(ctx, CreateDeviceInput{Name: "no public id"})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
}

func TestGetDeviceByPublicID(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	created, err := devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "north greenhouse",
	})
	require.NoError(t, err)

	device, err := devices.GetDeviceByPublicID(ctx, GetDeviceByPublicIDInput{PublicID: "ESP32_AB12CD34"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, device.ID)

	_, err = devices.GetDeviceByPublicID(ctx, GetDeviceByPublicIDInput{PublicID: "ESP32_MISSING"})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)
}

func TestClaimAndReleaseDevice(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	device, err := devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "north greenhouse",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DeviceInactive, device.Status)

	claimed, err := devices.ClaimDevice(ctx, ClaimDeviceInput{ID: device.ID, UserID: "user-a"})
	require.NoError(t, err)
	require.NotNil(t, claimed.OwnerUserID)
	assert.Equal(t, "user-a", *claimed.OwnerUserID)
	assert.Equal(t, models.DeviceActive, claimed.Status, "claiming activates the device")

	// Same account claiming again is a no-op, another account conflicts.
	again, err := devices.ClaimDevice(ctx, ClaimDeviceInput{ID: device.ID, UserID: "user-a"})
	require.NoError(t, err)
	assert.Equal(t, "user-a", *again.OwnerUserID)

	_, err = devices.ClaimDevice(ctx, ClaimDeviceInput{ID: device.ID, UserID: "user-b"})
	assert.ErrorIs(t, err, errs.ErrDeviceAlreadyClaimed)

	_, err = devices.ReleaseDevice(ctx, ReleaseDeviceInput{ID: device.ID, UserID: "user-b"})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	released, err := devices.ReleaseDevice(ctx, ReleaseDeviceInput{ID: device.ID, UserID: "user-a"})
	require.NoError(t, err)
	assert.Nil(t, released.OwnerUserID)
	assert.Equal(t, models.DeviceActive, released.Status, "release only touches ownership")

	_, err = devices.ReleaseDevice(ctx, ReleaseDeviceInput{ID: device.ID, UserID: "user-a"})
	assert.ErrorIs(t, err, errs.ErrDeviceNotClaimed)
}

func TestUpdateDeviceStatus(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	device, err := devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "north greenhouse",
	})
	require.NoError(t, err)

	updated, err := devices.UpdateDeviceStatus(ctx, UpdateDeviceStatusInput{
		ID:        device.ID,
		NewStatus: models.DeviceMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeviceMaintenance, updated.Status)

	_, err = devices.UpdateDeviceStatus(ctx, UpdateDeviceStatusInput{
		ID:        "missing",
		NewStatus: models.DeviceActive,
	})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)
}

func TestDeleteDeviceCascadesTelemetry(t *testing.T) {
	ctx := context.Background()
	devices, telemetry := setupDeviceManager(t)

	device, err := devices.CreateDevice(ctx, CreateDeviceInput{
		PublicID: "ESP32_AB12CD34",
		Name:     "north greenhouse",
	})
	require.NoError(t, err)

	_, err = telemetry.IngestSample(ctx, IngestSampleInput{
		PublicDeviceID: "ESP32_AB12CD34",
		Temperature:    21.0,
		Humidity:       55.0,
	})
	require.NoError(t, err)

	err = devices.DeleteDevice(ctx, DeleteDeviceInput{ID: device.ID})
	require.NoError(t, err)

	_, err = devices.GetDeviceByID(ctx, GetDeviceByIDInput{ID: device.ID})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)

	_, err = telemetry.GetLatest(ctx, GetLatestInput{PublicDeviceID: "ESP32_AB12CD34"})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)
}

func TestGetDevicesStats(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	for i, publicID := range []string{"ESP32_A", "ESP32_B", "ESP32_C"} {
		device, err := devices.CreateDevice(ctx, CreateDeviceInput{
			PublicID: publicID,
			Name:     "sensor",
		})
		require.NoError(t, err)

		if i == 0 {
			_, err = devices.UpdateDeviceStatus(ctx, UpdateDeviceStatusInput{
				ID:        device.ID,
				NewStatus: models.DeviceActive,
			})
			require.NoError(t, err)
		}
	}

	stats, err := devices.GetDevicesStats(ctx, GetDevicesStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalDevices)
	assert.Equal(t, 1, stats.DevicesStatus[models.DeviceActive])
	assert.Equal(t, 2, stats.DevicesStatus[models.DeviceInactive])
}

func TestGetDevicesPagination(t *testing.T) {
	ctx := context.Background()
	devices, _ := setupDeviceManager(t)

	for _, publicID := range []string{"ESP32_A", "ESP32_B", "ESP32_C"} {
		_, err := devices.CreateDevice(ctx, CreateDeviceInput{PublicID: publicID, Name: "sensor"})
		require.NoError(t, err)
	}

	page := []models.Device{}
	bookmark, err := devices.GetDevices(ctx, GetDevicesInput{
		ListInput: resources.ListInput[models.Device]{
			QueryParameters: &resources.QueryParameters{PageSize: 2},
			ApplyFunc: func(d models.Device) {
				page = append(page, d)
			},
		},
	})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.NotEmpty(t, bookmark)
}
