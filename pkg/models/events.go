package models

const HttpSourceHeader = "x-agrosense-source"
const HttpRequestIDHeader = "x-request-id"

const DeviceManagerSource = "urn://service/agrosense-devmanager"
const TelemetrySource = "urn://service/agrosense-telemetry"
const AgroDataSource = "urn://service/agrosense-agrodata"

type UpdateModel[E any] struct {
	Previous E `json:"previous"`
	Updated  E `json:"updated"`
}

type EventType string

const (
	EventCreateDeviceKey       EventType = "device.create"
	EventUpdateDeviceStatusKey EventType = "device.status.update"
	EventClaimDeviceKey        EventType = "device.claim"
	EventReleaseDeviceKey      EventType = "device.release"
	EventDeleteDeviceKey       EventType = "device.delete"

	EventSensorUpdateKey EventType = "iot.sensor.update"

	EventAnyKey EventType = "any"
)
