package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	identityextractors "github.com/agrosense/agrosense/pkg/routes/middlewares/identity-extractors"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewDeviceManagerHTTPLayer(router *gin.RouterGroup, svc services.DeviceManagerService, logger *logrus.Entry) {
	routes := controllers.NewDeviceManagerHttpRoutes(svc)

	rv1 := router.Group("/v1")

	rv1.GET("/stats", routes.GetStats)
	rv1.GET("/devices", routes.GetAllDevices)
	rv1.POST("/devices", routes.CreateDevice)
	rv1.GET("/devices/:id", routes.GetDeviceByID)
	rv1.PUT("/devices/:id/status", routes.UpdateDeviceStatus)
	rv1.DELETE("/devices/:id", routes.DeleteDevice)

	authed := rv1.Group("", identityextractors.RequireAuthentication())
	{
		authed.GET("/devices/mine", routes.GetMyDevices)
		authed.POST("/devices/:id/claim", routes.ClaimDevice)
		authed.POST("/devices/:id/release", routes.ReleaseDevice)
	}
}
