package models

type APIServiceInfo struct {
	Version   string
	BuildSHA  string
	BuildTime string
}

type ServiceName string

const (
	DeviceManagerServiceName ServiceName = "device-manager"
	TelemetryServiceName     ServiceName = "telemetry"
	AgroDataServiceName      ServiceName = "agro-data"
	AuthServiceName          ServiceName = "auth"
)
