package config

// HttpServer is the configuration for the HTTP server

type HttpServer struct {
	LogLevel           LogLevel     `mapstructure:"log_level"`
	HealthCheckLogging bool         `mapstructure:"health_check"`
	ListenAddress      string       `mapstructure:"listen_address"`
	Port               int          `mapstructure:"port"`
	Protocol           HTTPProtocol `mapstructure:"protocol"`
	CertFile           string       `mapstructure:"cert_file"`
	KeyFile            string       `mapstructure:"key_file"`
}
