package services

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/jakehl/goid"
	"github.com/sirupsen/logrus"
)

var deviceValidate *validator.Validate

type DeviceMiddleware func(DeviceManagerService) DeviceManagerService

type DeviceManagerServiceBackend struct {
	devicesStorage   storage.DevicesRepo
	telemetryStorage storage.TelemetryRepo
	service          DeviceManagerService
	logger           *logrus.Entry
}

type DeviceManagerBuilder struct {
	Logger           *logrus.Entry
	DevicesStorage   storage.DevicesRepo
	TelemetryStorage storage.TelemetryRepo
}

func NewDeviceManagerService(builder DeviceManagerBuilder) DeviceManagerService {
	deviceValidate = validator.New()
	svc := &DeviceManagerServiceBackend{
		devicesStorage:   builder.DevicesStorage,
		telemetryStorage: builder.TelemetryStorage,
		logger:           builder.Logger,
	}

	svc.service = svc
	return svc
}

func (svc *DeviceManagerServiceBackend) SetService(service DeviceManagerService) {
	svc.service = service
}

func (svc *DeviceManagerServiceBackend) GetDevicesStats(ctx context.Context, input GetDevicesStatsInput) (*models.DevicesStats, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	stats := models.DevicesStats{
		TotalDevices:  -1,
		DevicesStatus: map[models.DeviceStatus]int{},
	}

	allStatus := []models.DeviceStatus{
		models.DeviceInactive,
		models.DeviceActive,
		models.DeviceMaintenance,
	}

	for _, status := range allStatus {
		nmbr, err := svc.devicesStorage.Count(ctx, &resources.QueryParameters{
			Filters: []resources.FilterOption{
				{
					Field:           "status",
					FilterOperation: resources.EnumEqual,
					Value:           string(status),
				},
			},
		})
		if err != nil {
			lFunc.Errorf("could not count devices in %s status: %s", status, err)
			stats.DevicesStatus[status] = -1
		} else {
			stats.DevicesStatus[status] = nmbr
		}
	}

	nmbr, err := svc.devicesStorage.Count(ctx, input.QueryParameters)
	if err != nil {
		lFunc.Errorf("could not count devices: %s", err)
	} else {
		stats.TotalDevices = nmbr
	}

	return &stats, nil
}

func (svc DeviceManagerServiceBackend) CreateDevice(ctx context.Context, input CreateDeviceInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.devicesStorage.SelectExistsByPublicID(ctx, input.PublicID)
	if err != nil {
		lFunc.Errorf("could not check if device '%s' exists in storage engine: %s", input.PublicID, err)
		return nil, err
	} else if exists {
		lFunc.Errorf("device with public id %s already registered", input.PublicID)
		return nil, errs.ErrDeviceAlreadyExists
	}

	if input.Metadata == nil {
		input.Metadata = map[string]any{}
	}

	if input.Tags == nil {
		input.Tags = []string{}
	}

	lFunc.Debugf("creating device with public id %s", input.PublicID)

	device := &models.Device{
		ID:                goid.NewV4UUID().String(),
		PublicID:          input.PublicID,
		Name:              input.Name,
		Status:            models.DeviceInactive,
		Tags:              input.Tags,
		Metadata:          input.Metadata,
		CreationTimestamp: time.Now(),
	}

	dev, err := svc.devicesStorage.Insert(ctx, device)
	if err != nil {
		lFunc.Errorf("could not insert device %s in storage engine: %s", input.PublicID, err)
		return nil, err
	}

	return dev, nil
}

func (svc DeviceManagerServiceBackend) GetDevices(ctx context.Context, input GetDevicesInput) (string, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	lFunc.Debugf("getting all devices")
	return svc.devicesStorage.SelectAll(ctx, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc DeviceManagerServiceBackend) GetDevicesByOwner(ctx context.Context, input GetDevicesByOwnerInput) (string, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return "", errs.ErrValidateBadRequest
	}

	lFunc.Debugf("getting all devices owned by user %s", input.OwnerUserID)
	return svc.devicesStorage.SelectByOwner(ctx, input.OwnerUserID, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc DeviceManagerServiceBackend) GetDeviceByID(ctx context.Context, input GetDeviceByIDInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, device, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if device '%s' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device %s can not be found in storage engine", input.ID)
		return nil, errs.ErrDeviceNotFound
	}

	return device, nil
}

func (svc DeviceManagerServiceBackend) GetDeviceByPublicID(ctx context.Context, input GetDeviceByPublicIDInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, device, err := svc.devicesStorage.SelectExistsByPublicID(ctx, input.PublicID)
	if err != nil {
		lFunc.Errorf("could not check if device '%s' exists in storage engine: %s", input.PublicID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device with public id %s can not be found in storage engine", input.PublicID)
		return nil, errs.ErrDeviceNotFound
	}

	return device, nil
}

func (svc DeviceManagerServiceBackend) UpdateDeviceStatus(ctx context.Context, input UpdateDeviceStatusInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	if device.Status == input.NewStatus {
		lFunc.Warnf("skipping update. Device already in %s status", input.NewStatus)
		return device, nil
	}

	device.Status = input.NewStatus
	lFunc.Debugf("updating device %s status to %s", input.ID, input.NewStatus)
	device, err = svc.devicesStorage.Update(ctx, device)
	if err != nil {
		lFunc.Errorf("could not update device %s status: %s", input.ID, err)
		return nil, err
	}

	return device, nil
}

func (svc DeviceManagerServiceBackend) ClaimDevice(ctx context.Context, input ClaimDeviceInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	claimed, err := svc.devicesStorage.UpdateOwnerIfUnclaimed(ctx, input.ID, input.UserID)
	if err != nil {
		lFunc.Errorf("could not claim device %s: %s", input.ID, err)
		return nil, err
	}

	if !claimed {
		// Lost the conditional update. Claiming twice from the same account
		// stays idempotent, anything else is a conflict.
		if device.OwnerUserID != nil && *device.OwnerUserID == input.UserID {
			return device, nil
		}

		lFunc.Warnf("device %s already claimed", input.ID)
		return nil, errs.ErrDeviceAlreadyClaimed
	}

	lFunc.Infof("device %s claimed by user %s", input.ID, input.UserID)
	return svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
}

func (svc DeviceManagerServiceBackend) ReleaseDevice(ctx context.Context, input ReleaseDeviceInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	released, err := svc.devicesStorage.ClearOwnerIfOwnedBy(ctx, input.ID, input.UserID)
	if err != nil {
		lFunc.Errorf("could not release device %s: %s", input.ID, err)
		return nil, err
	}

	if !released {
		// Lost the conditional update. Classify from the pre-read snapshot;
		// a claim the caller held that vanished mid-flight counts as
		// already released.
		if device.OwnerUserID == nil || *device.OwnerUserID == input.UserID {
			lFunc.Warnf("device %s is not claimed", input.ID)
			return nil, errs.ErrDeviceNotClaimed
		}

		lFunc.Warnf("user %s does not own device %s", input.UserID, input.ID)
		return nil, errs.ErrForbidden
	}

	lFunc.Infof("device %s released by user %s", input.ID, input.UserID)
	return svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
}

func (svc DeviceManagerServiceBackend) DeleteDevice(ctx context.Context, input DeleteDeviceInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	_, err = svc.service.GetDeviceByID(ctx, GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return err
	}

	// Samples go first so a failed device delete never orphans them silently.
	err = svc.telemetryStorage.DeleteByDevice(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not delete telemetry samples of device %s: %s", input.ID, err)
		return err
	}

	err = svc.devicesStorage.Delete(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not delete device %s: %s", input.ID, err)
		return err
	}

	lFunc.Infof("device %s deleted", input.ID)
	return nil
}
