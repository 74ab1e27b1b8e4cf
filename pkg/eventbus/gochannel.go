package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/agrosense/agrosense/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewGoChannelPubSub builds the in-process event bus. The same gochannel
// instance acts as publisher and subscriber so events fan out to every
// subscriber within the process without an external broker.
func NewGoChannelPubSub(logger *logrus.Entry) (message.Publisher, message.Subscriber) {
	lEventBus := NewLoggerAdapter(logger.WithField("subsystem-provider", "GoChannel - PubSub"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, lEventBus)
	return pubSub, pubSub
}

func NewEventBusEngine(logger *logrus.Entry, conf config.EventBusEngine) (message.Publisher, message.Subscriber, error) {
	switch conf.Provider {
	case config.Channel:
		pub, sub := NewGoChannelPubSub(logger)
		return pub, sub, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event bus provider: %s", conf.Provider)
	}
}
