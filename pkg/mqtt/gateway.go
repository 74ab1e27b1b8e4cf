package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/services"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const defaultTopicRoot = "agrosense"

// telemetryPayload is what devices publish on <root>/<publicDeviceID>/telemetry.
type telemetryPayload struct {
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidity"`
	ReadingTime *time.Time `json:"readingTime,omitempty"`
}

// Gateway bridges an MQTT broker into the telemetry service so devices can
// report over MQTT instead of HTTP. Both paths converge on the same ingestion
// pipeline.
type Gateway struct {
	client    mqtt.Client
	telemetry services.TelemetryService
	topicRoot string
	qos       byte
	logger    *logrus.Entry
}

func NewGateway(logger *logrus.Entry, conf config.MQTTGatewayConfig, telemetry services.TelemetryService) *Gateway {
	topicRoot := conf.TopicRoot
	if topicRoot == "" {
		topicRoot = defaultTopicRoot
	}

	gw := &Gateway{
		telemetry: telemetry,
		topicRoot: topicRoot,
		qos:       conf.QoS,
		logger:    logger,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(conf.BrokerURL).
		SetClientID(conf.ClientID).
		SetOrderMatters(false).
		SetAutoReconnect(true)

	if conf.Username != "" {
		opts = opts.SetUsername(conf.Username).SetPassword(string(conf.Password))
	}

	opts = opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Infof("connected to MQTT broker %s", conf.BrokerURL)
		gw.subscribe(client)
	})

	opts = opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warnf("lost connection to MQTT broker: %s", err)
	})

	gw.client = mqtt.NewClient(opts)
	return gw
}

func (gw *Gateway) Connect() error {
	token := gw.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("could not connect to MQTT broker: %w", token.Error())
	}

	return nil
}

func (gw *Gateway) Disconnect() {
	gw.client.Disconnect(250)
}

func (gw *Gateway) subscribe(client mqtt.Client) {
	topic := fmt.Sprintf("%s/+/telemetry", gw.topicRoot)
	token := client.Subscribe(topic, gw.qos, gw.handleMessage)
	if token.Wait() && token.Error() != nil {
		gw.logger.Errorf("could not subscribe to %s: %s", topic, token.Error())
		return
	}

	gw.logger.Infof("subscribed to %s", topic)
}

func (gw *Gateway) handleMessage(client mqtt.Client, msg mqtt.Message) {
	ctx := helpers.InitContext()
	lFunc := helpers.ConfigureLogger(ctx, gw.logger)

	publicDeviceID := gw.deviceIDFromTopic(msg.Topic())
	if publicDeviceID == "" {
		lFunc.Warnf("dropping message on unexpected topic %s", msg.Topic())
		return
	}

	var payload telemetryPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		lFunc.Warnf("dropping malformed telemetry payload from device %s: %s", publicDeviceID, err)
		return
	}

	_, err := gw.telemetry.IngestSample(ctx, services.IngestSampleInput{
		PublicDeviceID: publicDeviceID,
		Temperature:    payload.Temperature,
		Humidity:       payload.Humidity,
		ReadingTime:    payload.ReadingTime,
	})
	if err != nil {
		lFunc.Errorf("could not ingest MQTT sample of device %s: %s", publicDeviceID, err)
	}
}

// deviceIDFromTopic extracts the public device id from <root>/<id>/telemetry.
func (gw *Gateway) deviceIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != gw.topicRoot || parts[2] != "telemetry" {
		return ""
	}

	return parts[1]
}
