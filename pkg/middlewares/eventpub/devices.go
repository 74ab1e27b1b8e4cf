package eventpub

import (
	"context"
	"fmt"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/services"
)

type deviceEventPublisher struct {
	next       services.DeviceManagerService
	eventMWPub ICloudEventPublisher
}

func NewDeviceEventPublisher(eventMWPub ICloudEventPublisher) services.DeviceMiddleware {
	return func(next services.DeviceManagerService) services.DeviceManagerService {
		return &deviceEventPublisher{
			next:       next,
			eventMWPub: NewEventPublisherWithSourceMiddleware(eventMWPub, models.DeviceManagerSource),
		}
	}
}

func (mw *deviceEventPublisher) GetDevicesStats(ctx context.Context, input services.GetDevicesStatsInput) (*models.DevicesStats, error) {
	return mw.next.GetDevicesStats(ctx, input)
}

func (mw *deviceEventPublisher) CreateDevice(ctx context.Context, input services.CreateDeviceInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventCreateDeviceKey)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", input.PublicID))

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.CreateDevice(ctx, input)
}

func (mw *deviceEventPublisher) GetDevices(ctx context.Context, input services.GetDevicesInput) (string, error) {
	return mw.next.GetDevices(ctx, input)
}

func (mw *deviceEventPublisher) GetDevicesByOwner(ctx context.Context, input services.GetDevicesByOwnerInput) (string, error) {
	return mw.next.GetDevicesByOwner(ctx, input)
}

func (mw *deviceEventPublisher) GetDeviceByID(ctx context.Context, input services.GetDeviceByIDInput) (*models.Device, error) {
	return mw.next.GetDeviceByID(ctx, input)
}

func (mw *deviceEventPublisher) GetDeviceByPublicID(ctx context.Context, input services.GetDeviceByPublicIDInput) (*models.Device, error) {
	return mw.next.GetDeviceByPublicID(ctx, input)
}

func (mw *deviceEventPublisher) UpdateDeviceStatus(ctx context.Context, input services.UpdateDeviceStatusInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventUpdateDeviceStatusKey)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", input.ID))

	prev, err := mw.next.GetDeviceByID(ctx, services.GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, fmt.Errorf("mw error: could not get device %s: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, models.UpdateModel[models.Device]{
				Updated:  *output,
				Previous: *prev,
			})
		}
	}()
	return mw.next.UpdateDeviceStatus(ctx, input)
}

func (mw *deviceEventPublisher) ClaimDevice(ctx context.Context, input services.ClaimDeviceInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventClaimDeviceKey)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", input.ID))

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.ClaimDevice(ctx, input)
}

func (mw *deviceEventPublisher) ReleaseDevice(ctx context.Context, input services.ReleaseDeviceInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventReleaseDeviceKey)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", input.ID))

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.ReleaseDevice(ctx, input)
}

func (mw *deviceEventPublisher) DeleteDevice(ctx context.Context, input services.DeleteDeviceInput) (err error) {
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventDeleteDeviceKey)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", input.ID))

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, input.ID)
		}
	}()
	return mw.next.DeleteDevice(ctx, input)
}
