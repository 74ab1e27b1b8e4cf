package eventpub

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/sirupsen/logrus"
)

type ICloudEventPublisher interface {
	PublishCloudEvent(ctx context.Context, payload interface{})
}

type CloudEventPublisher struct {
	Publisher message.Publisher
	ServiceID string
	Logger    *logrus.Entry
}

func (cemp *CloudEventPublisher) PublishCloudEvent(ctx context.Context, payload interface{}) {
	event := helpers.BuildCloudEvent(ctx, payload)

	eventBytes, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		cemp.Logger.Errorf("error while serializing event: %s", marshalErr)
		return
	}

	cemp.Logger.Tracef("publishing event: Type=%s Source=%s \n%s", event.Type(), event.Source(), string(eventBytes))

	msg := message.NewMessage(event.ID(), eventBytes)
	msg.SetContext(ctx)

	err := cemp.Publisher.Publish(event.Type(), msg)
	if err != nil {
		cemp.Logger.Errorf("error while publishing %s event: %s", event.Type(), err)
	}
}

type EventPublisherWithSourceMiddleware struct {
	Publisher ICloudEventPublisher
	Source    string
}

func NewEventPublisherWithSourceMiddleware(publisher ICloudEventPublisher, source string) ICloudEventPublisher {
	return &EventPublisherWithSourceMiddleware{
		Publisher: publisher,
		Source:    source,
	}
}

func (epws *EventPublisherWithSourceMiddleware) PublishCloudEvent(ctx context.Context, payload interface{}) {
	if ctx.Value(agrosense.ContextKeySource) == nil {
		ctx = context.WithValue(ctx, agrosense.ContextKeySource, epws.Source)
	}
	epws.Publisher.PublishCloudEvent(ctx, payload)
}
