package helpers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/stretchr/testify/assert"
)

func TestBuildCloudEvent(t *testing.T) {
	payload := map[string]string{"key": "value"}

	ctx := context.Background()
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventType, string(models.EventSensorUpdateKey))
	ctx = context.WithValue(ctx, agrosense.ContextKeySource, models.TelemetrySource)
	ctx = context.WithValue(ctx, agrosense.ContextKeyEventSubject, "device/ESP32_AB12CD34")

	event := BuildCloudEvent(ctx, payload)

	assert.Equal(t, "1.0", event.SpecVersion())
	assert.Equal(t, string(models.EventSensorUpdateKey), event.Type())
	assert.Equal(t, "device/ESP32_AB12CD34", event.Subject())
	assert.Contains(t, event.Source(), models.TelemetrySource)
	assert.WithinDuration(t, time.Now(), event.Time(), time.Second)
	assert.NotEmpty(t, event.ID())
	assert.Equal(t, cloudevents.ApplicationJSON, event.DataContentType())

	var eventData map[string]string
	err := json.Unmarshal(event.Data(), &eventData)
	assert.NoError(t, err)
	assert.Equal(t, payload, eventData)
}

func TestBuildCloudEventWithoutContextValues(t *testing.T) {
	event := BuildCloudEvent(context.Background(), map[string]string{})

	assert.Equal(t, "source://unknown", event.Source())
	assert.Empty(t, event.Type())
}

func TestParseCloudEvent(t *testing.T) {
	ctx := context.WithValue(context.Background(), agrosense.ContextKeyEventType, string(models.EventCreateDeviceKey))
	originalEvent := BuildCloudEvent(ctx, map[string]string{"key": "value"})
	eventBytes, err := json.Marshal(originalEvent)
	assert.NoError(t, err)

	parsedEvent, err := ParseCloudEvent(eventBytes)
	assert.NoError(t, err)
	assert.Equal(t, originalEvent.ID(), parsedEvent.ID())
	assert.Equal(t, originalEvent.Type(), parsedEvent.Type())

	_, err = ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestGetEventBody(t *testing.T) {
	type payload struct {
		DeviceID string `json:"device_id"`
	}

	ctx := context.Background()
	event := BuildCloudEvent(ctx, payload{DeviceID: "dev-1"})

	decoded, err := GetEventBody[payload](&event)
	assert.NoError(t, err)
	assert.Equal(t, "dev-1", decoded.DeviceID)

	_, err = GetEventBody[payload](nil)
	assert.Error(t, err)
}
