package config

// AgroSenseConfig is the configuration of the monolithic AgroSense backend.
// Every subsystem carries its own log level so they can be tuned independently.
type AgroSenseConfig struct {
	Logs              Logging                `mapstructure:"logs"`
	Server            HttpServer             `mapstructure:"server"`
	Storage           PluggableStorageEngine `mapstructure:"storage"`
	PublisherEventBus EventBusEngine         `mapstructure:"publisher_event_bus"`
	Auth              AuthConfig             `mapstructure:"auth"`
	MQTTGateway       MQTTGatewayConfig      `mapstructure:"mqtt_gateway"`
}

type AuthConfig struct {
	JWTSigningKey   Password `mapstructure:"jwt_signing_key"`
	TokenTTLMinutes int      `mapstructure:"token_ttl_minutes"`
}

type MQTTGatewayConfig struct {
	LogLevel  LogLevel `mapstructure:"log_level"`
	Enabled   bool     `mapstructure:"enabled"`
	BrokerURL string   `mapstructure:"broker_url"`
	ClientID  string   `mapstructure:"client_id"`
	Username  string   `mapstructure:"username"`
	Password  Password `mapstructure:"password"`
	TopicRoot string   `mapstructure:"topic_root"`
	QoS       byte     `mapstructure:"qos"`
}
