package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewAuthHTTPLayer(router *gin.RouterGroup, svc services.AuthService, logger *logrus.Entry) {
	routes := controllers.NewAuthHttpRoutes(svc)

	rv1 := router.Group("/v1")

	rv1.POST("/auth/register", routes.Register)
	rv1.POST("/auth/login", routes.Login)
}
