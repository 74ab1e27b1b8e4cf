package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	identityextractors "github.com/agrosense/agrosense/pkg/routes/middlewares/identity-extractors"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewCultivationHTTPLayer(router *gin.RouterGroup, svc services.CultivationService, logger *logrus.Entry) {
	routes := controllers.NewCultivationHttpRoutes(svc)

	rv1 := router.Group("/v1", identityextractors.RequireAuthentication())

	rv1.POST("/plans", routes.CreatePlan)
	rv1.GET("/plans", routes.GetPlans)
	rv1.GET("/plans/:id", routes.GetPlanByID)
	rv1.PUT("/plans/:id/status", routes.UpdatePlanStatus)
	rv1.DELETE("/plans/:id", routes.DeletePlan)
}
