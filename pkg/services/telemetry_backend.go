package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var telemetryValidate *validator.Validate

type TelemetryMiddleware func(TelemetryService) TelemetryService

type TelemetryServiceBackend struct {
	devicesStorage   storage.DevicesRepo
	telemetryStorage storage.TelemetryRepo
	eventPublisher   SensorEventPublisher
	service          TelemetryService
	logger           *logrus.Entry
}

type TelemetryBuilder struct {
	Logger           *logrus.Entry
	DevicesStorage   storage.DevicesRepo
	TelemetryStorage storage.TelemetryRepo
	// EventPublisher may be nil: ingestion then persists without broadcasting.
	EventPublisher SensorEventPublisher
}

func NewTelemetryService(builder TelemetryBuilder) TelemetryService {
	telemetryValidate = validator.New()
	svc := &TelemetryServiceBackend{
		devicesStorage:   builder.DevicesStorage,
		telemetryStorage: builder.TelemetryStorage,
		eventPublisher:   builder.EventPublisher,
		logger:           builder.Logger,
	}

	svc.service = svc
	return svc
}

func (svc *TelemetryServiceBackend) SetService(service TelemetryService) {
	svc.service = service
}

func (svc *TelemetryServiceBackend) resolveDevice(ctx context.Context, publicID string) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	exists, device, err := svc.devicesStorage.SelectExistsByPublicID(ctx, publicID)
	if err != nil {
		lFunc.Errorf("could not check if device '%s' exists in storage engine: %s", publicID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device with public id %s can not be found in storage engine", publicID)
		return nil, errs.ErrDeviceNotFound
	}

	return device, nil
}

func (svc *TelemetryServiceBackend) IngestSample(ctx context.Context, input IngestSampleInput) (*models.SensorUpdate, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := telemetryValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.resolveDevice(ctx, input.PublicDeviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	readingTime := now
	if input.ReadingTime != nil {
		readingTime = *input.ReadingTime
	}

	sample := &models.TelemetrySample{
		DeviceID:          device.ID,
		OwnerUserID:       device.OwnerUserID,
		Temperature:       input.Temperature,
		Humidity:          input.Humidity,
		ReadingTime:       readingTime,
		CreationTimestamp: now,
	}

	sample, err = svc.telemetryStorage.Insert(ctx, sample)
	if err != nil {
		lFunc.Errorf("could not insert telemetry sample of device %s in storage engine: %s", input.PublicDeviceID, err)
		return nil, err
	}

	// Liveness is a convenience marker. The sample is already durable, so a
	// failed touch only gets logged.
	err = svc.devicesStorage.TouchLiveness(ctx, device.ID, models.DeviceActive, now)
	if err != nil {
		lFunc.Warnf("could not update liveness of device %s: %s", input.PublicDeviceID, err)
	}

	update := &models.SensorUpdate{
		Sample:         *sample,
		PublicDeviceID: device.PublicID,
		DeviceName:     device.Name,
	}

	if svc.eventPublisher != nil {
		evCtx := context.WithValue(ctx, agrosense.ContextKeyEventType, models.EventSensorUpdateKey)
		evCtx = context.WithValue(evCtx, agrosense.ContextKeyEventSubject, fmt.Sprintf("device/%s", device.PublicID))
		svc.eventPublisher.PublishCloudEvent(evCtx, update)
	} else {
		lFunc.Tracef("no event publisher configured. skipping broadcast of device %s sample", input.PublicDeviceID)
	}

	return update, nil
}

func (svc *TelemetryServiceBackend) GetLatest(ctx context.Context, input GetLatestInput) (*models.TelemetrySample, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := telemetryValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.resolveDevice(ctx, input.PublicDeviceID)
	if err != nil {
		return nil, err
	}

	exists, sample, err := svc.telemetryStorage.SelectLatest(ctx, device.ID)
	if err != nil {
		lFunc.Errorf("could not get latest sample of device %s: %s", input.PublicDeviceID, err)
		return nil, err
	}

	// A registered device with no samples yet is not an error.
	if !exists {
		return nil, nil
	}

	return sample, nil
}

func (svc *TelemetryServiceBackend) GetHistory(ctx context.Context, input GetHistoryInput) ([]models.TelemetrySample, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := telemetryValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.resolveDevice(ctx, input.PublicDeviceID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	} else if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	samples, err := svc.telemetryStorage.SelectRange(ctx, device.ID, input.From, input.To, limit)
	if err != nil {
		lFunc.Errorf("could not get sample history of device %s: %s", input.PublicDeviceID, err)
		return nil, err
	}

	if samples == nil {
		samples = []models.TelemetrySample{}
	}

	return samples, nil
}

func (svc *TelemetryServiceBackend) GetHourlyAggregate(ctx context.Context, input GetHourlyAggregateInput) (*HourlyAggregateOutput, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := telemetryValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	device, err := svc.resolveDevice(ctx, input.PublicDeviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.Add(-AggregationWindow)

	samples, err := svc.telemetryStorage.SelectRange(ctx, device.ID, &from, &now, 0)
	if err != nil {
		lFunc.Errorf("could not get samples of device %s for aggregation: %s", input.PublicDeviceID, err)
		return nil, err
	}

	byBucket := map[time.Time][]models.TelemetrySample{}
	for _, sample := range samples {
		bucketStart := sample.CreationTimestamp.Truncate(time.Hour)
		byBucket[bucketStart] = append(byBucket[bucketStart], sample)
	}

	// Walk the window hour by hour, newest first. Hours without samples are
	// skipped rather than emitted as zero buckets.
	buckets := []models.HourlyBucket{}
	for bucketStart := now.Truncate(time.Hour); !bucketStart.Before(from.Truncate(time.Hour)); bucketStart = bucketStart.Add(-time.Hour) {
		bucketSamples, ok := byBucket[bucketStart]
		if !ok {
			continue
		}

		buckets = append(buckets, aggregateBucket(bucketStart, bucketSamples))
	}

	return &HourlyAggregateOutput{
		Device:  device,
		Buckets: buckets,
	}, nil
}

func aggregateBucket(bucketStart time.Time, samples []models.TelemetrySample) models.HourlyBucket {
	temp := models.StatSummary{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	hum := models.StatSummary{Min: math.MaxFloat64, Max: -math.MaxFloat64}

	for _, sample := range samples {
		temp.Avg += sample.Temperature
		temp.Min = math.Min(temp.Min, sample.Temperature)
		temp.Max = math.Max(temp.Max, sample.Temperature)

		hum.Avg += sample.Humidity
		hum.Min = math.Min(hum.Min, sample.Humidity)
		hum.Max = math.Max(hum.Max, sample.Humidity)
	}

	count := len(samples)
	temp.Avg = temp.Avg / float64(count)
	hum.Avg = hum.Avg / float64(count)

	return models.HourlyBucket{
		BucketStart: bucketStart,
		SampleCount: count,
		Temperature: temp,
		Humidity:    hum,
	}
}
