package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/jakehl/goid"
)

func BuildCloudEvent(ctx context.Context, payload interface{}) event.Event {
	event := cloudevents.NewEvent()

	event.SetSpecVersion("1.0")
	event.SetTime(time.Now())
	event.SetID(goid.NewV4UUID().String())
	event.SetData(cloudevents.ApplicationJSON, payload)

	eventSource, ok := ctx.Value(agrosense.ContextKeySource).(string)
	if ok {
		event.SetSource(fmt.Sprintf("source://%s/%s", agrosense.ContextKeySource, eventSource))
	} else {
		event.SetSource("source://unknown")
	}

	eventType, ok := ctx.Value(agrosense.ContextKeyEventType).(string)
	if ok {
		event.SetType(eventType)
	} else if typedEventType, ok := ctx.Value(agrosense.ContextKeyEventType).(models.EventType); ok {
		event.SetType(string(typedEventType))
	}

	eventSubject, ok := ctx.Value(agrosense.ContextKeyEventSubject).(string)
	if ok {
		event.SetSubject(eventSubject)
	}

	if eventAuthType, ok := ctx.Value(agrosense.ContextKeyAuthType).(string); ok && eventAuthType != "" {
		event.SetExtension("authtype", eventAuthType)
	}

	if eventAuthID, ok := ctx.Value(agrosense.ContextKeyAuthID).(string); ok && eventAuthID != "" {
		event.SetExtension("authid", eventAuthID)
	}

	return event
}

func ParseCloudEvent(msg []byte) (*event.Event, error) {
	var event cloudevents.Event
	err := json.Unmarshal(msg, &event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func GetEventBody[E any](cloudEvent *event.Event) (*E, error) {
	var elem *E
	if cloudEvent == nil {
		return nil, fmt.Errorf("cloud event is null")
	}

	if cloudEvent.Data() == nil {
		return nil, fmt.Errorf("cloud event data is null")
	}

	eventDataBytes := cloudEvent.Data()
	err := json.Unmarshal(eventDataBytes, &elem)
	return elem, err
}
