package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewChatbotHTTPLayer(router *gin.RouterGroup, svc services.ChatbotService, logger *logrus.Entry) {
	routes := controllers.NewChatbotHttpRoutes(svc)

	rv1 := router.Group("/v1")

	rv1.POST("/chatbot/diagnose", routes.Diagnose)
}
