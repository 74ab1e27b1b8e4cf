package realtime

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/sirupsen/logrus"
)

// Forwarder bridges the event bus and the Hub: it subscribes to sensor update
// events and replays each one into the room of the device that produced it.
// Ingestion only ever talks to the event bus, never to the Hub directly.
type Forwarder struct {
	hub        *Hub
	subscriber message.Subscriber
	logger     *logrus.Entry
}

func NewForwarder(hub *Hub, subscriber message.Subscriber, logger *logrus.Entry) *Forwarder {
	return &Forwarder{
		hub:        hub,
		subscriber: subscriber,
		logger:     logger,
	}
}

// Run subscribes to the sensor update topic and forwards until the context is
// cancelled. Undecodable events are acked and dropped; redelivering them
// would not make them parseable.
func (f *Forwarder) Run(ctx context.Context) error {
	messages, err := f.subscriber.Subscribe(ctx, string(models.EventSensorUpdateKey))
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			f.forward(msg)
			msg.Ack()
		}
	}()

	return nil
}

func (f *Forwarder) forward(msg *message.Message) {
	event, err := helpers.ParseCloudEvent(msg.Payload)
	if err != nil {
		f.logger.Errorf("could not parse sensor update event: %s", err)
		return
	}

	update, err := helpers.GetEventBody[models.SensorUpdate](event)
	if err != nil {
		f.logger.Errorf("could not decode sensor update payload: %s", err)
		return
	}

	if update.PublicDeviceID == "" {
		f.logger.Warnf("dropping sensor update without device id")
		return
	}

	payload, err := json.Marshal(update)
	if err != nil {
		f.logger.Errorf("could not serialize sensor update for broadcast: %s", err)
		return
	}

	f.hub.Broadcast(update.PublicDeviceID, payload)
}
