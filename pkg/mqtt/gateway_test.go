package mqtt

import (
	"context"
	"testing"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type telemetryStub struct {
	services.TelemetryService
	ingested []services.IngestSampleInput
}

func (s *telemetryStub) IngestSample(ctx context.Context, input services.IngestSampleInput) (*models.SensorUpdate, error) {
	s.ingested = append(s.ingested, input)
	return &models.SensorUpdate{PublicDeviceID: input.PublicDeviceID}, nil
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func newTestGateway(t *testing.T) (*Gateway, *telemetryStub) {
	t.Helper()

	logger := helpers.SetupLogger(config.Trace, "AgroSense", "MQTTTest")
	stub := &telemetryStub{}
	gw := NewGateway(logger, config.MQTTGatewayConfig{
		BrokerURL: "tcp://localhost:1883",
		ClientID:  "agrosense-test",
	}, stub)

	return gw, stub
}

func TestDeviceIDFromTopic(t *testing.T) {
	gw, _ := newTestGateway(t)

	assert.Equal(t, "ESP32_AB12CD34", gw.deviceIDFromTopic("agrosense/ESP32_AB12CD34/telemetry"))
	assert.Empty(t, gw.deviceIDFromTopic("agrosense/ESP32_AB12CD34/status"))
	assert.Empty(t, gw.deviceIDFromTopic("other/ESP32_AB12CD34/telemetry"))
	assert.Empty(t, gw.deviceIDFromTopic("agrosense/telemetry"))
}

func TestHandleMessageIngests(t *testing.T) {
	gw, stub := newTestGateway(t)

	gw.handleMessage(nil, &fakeMessage{
		topic:   "agrosense/ESP32_AB12CD34/telemetry",
		payload: []byte(`{"temperature": 23.4, "humidity": 61.0}`),
	})

	require.Len(t, stub.ingested, 1)
	assert.Equal(t, "ESP32_AB12CD34", stub.ingested[0].PublicDeviceID)
	assert.Equal(t, 23.4, stub.ingested[0].Temperature)
	assert.Nil(t, stub.ingested[0].ReadingTime)
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	gw, stub := newTestGateway(t)

	gw.handleMessage(nil, &fakeMessage{
		topic:   "agrosense/ESP32_AB12CD34/telemetry",
		payload: []byte(`not json`),
	})
	gw.handleMessage(nil, &fakeMessage{
		topic:   "agrosense/weird/topic/shape",
		payload: []byte(`{}`),
	})

	assert.Empty(t, stub.ingested)
}
