package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/agrosense/agrosense/pkg/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	payloads []interface{}
}

func (p *recordingPublisher) PublishCloudEvent(ctx context.Context, payload interface{}) {
	p.payloads = append(p.payloads, payload)
}

type telemetryTestBed struct {
	devices   DeviceManagerService
	telemetry TelemetryService
	publisher *recordingPublisher
	devRepo   storage.DevicesRepo
}

func setupTelemetryService(t *testing.T) *telemetryTestBed {
	t.Helper()

	logger := helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest")
	engine, err := postgres.NewStorageEngine(logger, config.PluggableStorageEngine{
		Provider: config.SQLite,
		SQLite: config.SQLitePSEConfig{
			DatabasePath: filepath.Join(t.TempDir(), "telemetry-svc.db"),
		},
	})
	require.NoError(t, err)

	devRepo, err := engine.GetDevicesStorage()
	require.NoError(t, err)
	telRepo, err := engine.GetTelemetryStorage()
	require.NoError(t, err)

	publisher := &recordingPublisher{}

	devices := NewDeviceManagerService(DeviceManagerBuilder{
		Logger:           logger,
		DevicesStorage:   devRepo,
		TelemetryStorage: telRepo,
	})

	telemetry := NewTelemetryService(TelemetryBuilder{
		Logger:           logger,
		DevicesStorage:   devRepo,
		TelemetryStorage: telRepo,
		EventPublisher:   publisher,
	})

	return &telemetryTestBed{
		devices:   devices,
		telemetry: telemetry,
		publisher: publisher,
		devRepo:   devRepo,
	}
}

func (tb *telemetryTestBed) registerDevice(t *testing.T, publicID string) *models.Device {
	t.Helper()

	device, err := tb.devices.CreateDevice(context.Background(), CreateDeviceInput{
		PublicID: publicID,
		Name:     "greenhouse sensor",
	})
	require.NoError(t, err)

	return device
}

func TestIngestSampleUnknownDevice(t *testing.T) {
	tb := setupTelemetryService(t)

	_, err := tb.telemetry.IngestSample(context.Background(), IngestSampleInput{
		PublicDeviceID: "ESP32_UNKNOWN",
		Temperature:    21.0,
		Humidity:       40.0,
	})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)

	_, err = tb.telemetry.IngestSample(context.Background(), IngestSampleInput{
		Temperature: 21.0,
		Humidity:    40.0,
	})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest)

	assert.Empty(t, tb.publisher.payloads, "failed ingests must not broadcast")
}

func TestIngestSamplePersistsTouchesAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	device := tb.registerDevice(t, "ESP32_AB12CD34")
	assert.Equal(t, models.DeviceInactive, device.Status)

	update, err := tb.telemetry.IngestSample(ctx, IngestSampleInput{
		PublicDeviceID: "ESP32_AB12CD34",
		Temperature:    23.4,
		Humidity:       61.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "ESP32_AB12CD34", update.PublicDeviceID)
	assert.Equal(t, "greenhouse sensor", update.DeviceName)
	assert.Equal(t, 23.4, update.Sample.Temperature)
	assert.Equal(t, device.ID, update.Sample.DeviceID)
	assert.False(t, update.Sample.CreationTimestamp.IsZero())

	refreshed, err := tb.devices.GetDeviceByID(ctx, GetDeviceByIDInput{ID: device.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DeviceActive, refreshed.Status)
	require.NotNil(t, refreshed.LastSeen)

	require.Len(t, tb.publisher.payloads, 1)
	published, ok := tb.publisher.payloads[0].(*models.SensorUpdate)
	require.True(t, ok)
	assert.Equal(t, update.Sample.ID, published.Sample.ID)
}

func TestIngestSampleWithoutPublisher(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_NOPUB")

	telemetryNoPub := NewTelemetryService(TelemetryBuilder{
		Logger:           helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest"),
		DevicesStorage:   tb.devRepo,
		TelemetryStorage: mustTelemetryRepo(t, tb),
	})

	update, err := telemetryNoPub.IngestSample(ctx, IngestSampleInput{
		PublicDeviceID: "ESP32_NOPUB",
		Temperature:    19.0,
		Humidity:       50.0,
	})
	require.NoError(t, err, "missing publisher degrades to persist-only")
	assert.NotNil(t, update)
}

func mustTelemetryRepo(t *testing.T, tb *telemetryTestBed) storage.TelemetryRepo {
	t.Helper()

	backend, ok := tb.telemetry.(*TelemetryServiceBackend)
	require.True(t, ok)
	return backend.telemetryStorage
}

func TestGetLatestNoSamplesYet(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_SILENT")

	sample, err := tb.telemetry.GetLatest(ctx, GetLatestInput{PublicDeviceID: "ESP32_SILENT"})
	require.NoError(t, err)
	assert.Nil(t, sample, "registered but silent device yields no sample and no error")

	_, err = tb.telemetry.GetLatest(ctx, GetLatestInput{PublicDeviceID: "ESP32_GHOST"})
	assert.ErrorIs(t, err, errs.ErrDeviceNotFound)
}

func TestGetLatestReturnsMostRecent(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_AB12CD34")

	for _, temp := range []float64{20.0, 21.0, 22.0} {
		_, err := tb.telemetry.IngestSample(ctx, IngestSampleInput{
			PublicDeviceID: "ESP32_AB12CD34",
			Temperature:    temp,
			Humidity:       50.0,
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	latest, err := tb.telemetry.GetLatest(ctx, GetLatestInput{PublicDeviceID: "ESP32_AB12CD34"})
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 22.0, latest.Temperature)
}

func TestGetHistoryLimits(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_AB12CD34")

	for i := 0; i < 5; i++ {
		_, err := tb.telemetry.IngestSample(ctx, IngestSampleInput{
			PublicDeviceID: "ESP32_AB12CD34",
			Temperature:    float64(i),
			Humidity:       50.0,
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	samples, err := tb.telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34"})
	require.NoError(t, err)
	assert.Len(t, samples, 5, "default limit returns everything below it")

	samples, err = tb.telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34", Limit: 2})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 4.0, samples[0].Temperature, "most recent first")

	samples, err = tb.telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34", Limit: 50000})
	require.NoError(t, err)
	assert.Len(t, samples, 5, "oversized limit is clamped, not an error")
}

// limitSpyDevicesRepo resolves every public ID to the same device so history
// queries reach the sample store.
type limitSpyDevicesRepo struct {
	storage.DevicesRepo
	device *models.Device
}

func (r *limitSpyDevicesRepo) SelectExistsByPublicID(ctx context.Context, publicID string) (bool, *models.Device, error) {
	return true, r.device, nil
}

// limitSpyTelemetryRepo records the limit each range query was issued with and
// answers with that many synthetic samples, as a store holding more rows than
// any cap would.
type limitSpyTelemetryRepo struct {
	storage.TelemetryRepo
	gotLimits []int
}

func (r *limitSpyTelemetryRepo) SelectRange(ctx context.Context, deviceID string, from, to *time.Time, limit int) ([]models.TelemetrySample, error) {
	r.gotLimits = append(r.gotLimits, limit)
	samples := make([]models.TelemetrySample, limit)
	for i := range samples {
		samples[i] = models.TelemetrySample{ID: uint(i + 1), DeviceID: deviceID}
	}
	return samples, nil
}

func TestGetHistoryLimitClamp(t *testing.T) {
	ctx := context.Background()
	logger := helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest")

	devRepo := &limitSpyDevicesRepo{device: &models.Device{ID: "dev-1", PublicID: "ESP32_AB12CD34"}}
	telRepo := &limitSpyTelemetryRepo{}

	telemetry := NewTelemetryService(TelemetryBuilder{
		Logger:           logger,
		DevicesStorage:   devRepo,
		TelemetryStorage: telRepo,
	})

	samples, err := telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34", Limit: 50000})
	require.NoError(t, err)
	assert.Len(t, samples, MaxHistoryLimit)

	samples, err = telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34"})
	require.NoError(t, err)
	assert.Len(t, samples, DefaultHistoryLimit)

	samples, err = telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_AB12CD34", Limit: MaxHistoryLimit})
	require.NoError(t, err)
	assert.Len(t, samples, MaxHistoryLimit)

	require.Equal(t, []int{MaxHistoryLimit, DefaultHistoryLimit, MaxHistoryLimit}, telRepo.gotLimits)
}

func TestGetHistoryEmptyIsNotAnError(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_SILENT")

	samples, err := tb.telemetry.GetHistory(ctx, GetHistoryInput{PublicDeviceID: "ESP32_SILENT"})
	require.NoError(t, err)
	require.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestGetHourlyAggregate(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_AB12CD34")

	for _, temp := range []float64{10.0, 20.0, 30.0} {
		_, err := tb.telemetry.IngestSample(ctx, IngestSampleInput{
			PublicDeviceID: "ESP32_AB12CD34",
			Temperature:    temp,
			Humidity:       temp + 5,
		})
		require.NoError(t, err)
	}

	out, err := tb.telemetry.GetHourlyAggregate(ctx, GetHourlyAggregateInput{PublicDeviceID: "ESP32_AB12CD34"})
	require.NoError(t, err)
	require.NotNil(t, out.Device)
	assert.Equal(t, "ESP32_AB12CD34", out.Device.PublicID)

	// All three samples landed within the same wall-clock minute, so at most
	// two adjacent buckets contain them and none of the remaining 24 appear.
	require.NotEmpty(t, out.Buckets)
	assert.LessOrEqual(t, len(out.Buckets), 2)

	totalCount := 0
	for _, bucket := range out.Buckets {
		totalCount += bucket.SampleCount
		assert.NotZero(t, bucket.SampleCount, "empty buckets are omitted")
	}
	assert.Equal(t, 3, totalCount)

	if len(out.Buckets) == 1 {
		bucket := out.Buckets[0]
		assert.Equal(t, 20.0, bucket.Temperature.Avg)
		assert.Equal(t, 10.0, bucket.Temperature.Min)
		assert.Equal(t, 30.0, bucket.Temperature.Max)
		assert.Equal(t, 25.0, bucket.Humidity.Avg)
	}

	for i := 1; i < len(out.Buckets); i++ {
		assert.True(t, out.Buckets[i].BucketStart.Before(out.Buckets[i-1].BucketStart),
			"buckets come most recent first")
	}
}

func TestGetHourlyAggregateNoSamples(t *testing.T) {
	ctx := context.Background()
	tb := setupTelemetryService(t)
	tb.registerDevice(t, "ESP32_SILENT")

	out, err := tb.telemetry.GetHourlyAggregate(ctx, GetHourlyAggregateInput{PublicDeviceID: "ESP32_SILENT"})
	require.NoError(t, err)
	assert.Empty(t, out.Buckets)
}
