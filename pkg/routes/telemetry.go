package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewTelemetryHTTPLayer(router *gin.RouterGroup, svc services.TelemetryService, logger *logrus.Entry) {
	routes := controllers.NewTelemetryHttpRoutes(svc)

	rv1 := router.Group("/v1")

	rv1.POST("/sensors/data", routes.IngestSensorData)
	rv1.GET("/sensors/:deviceId/latest", routes.GetLatest)
	rv1.GET("/sensors/:deviceId/history", routes.GetHistory)
	rv1.GET("/sensors/:deviceId/agg24h", routes.GetHourlyAggregate)
}
