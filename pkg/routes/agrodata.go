package routes

import (
	"github.com/agrosense/agrosense/pkg/controllers"
	"github.com/agrosense/agrosense/pkg/models"
	identityextractors "github.com/agrosense/agrosense/pkg/routes/middlewares/identity-extractors"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewAgroDataHTTPLayer(router *gin.RouterGroup, svc services.AgroDataService, logger *logrus.Entry) {
	routes := controllers.NewAgroDataHttpRoutes(svc)

	rv1 := router.Group("/v1")
	adminOnly := identityextractors.RequireRole(models.RoleAdmin)

	rv1.GET("/crops", routes.GetAllCrops)
	rv1.GET("/crops/:id", routes.GetCropByID)
	rv1.POST("/crops", adminOnly, routes.CreateCrop)
	rv1.PUT("/crops/:id", adminOnly, routes.UpdateCrop)
	rv1.DELETE("/crops/:id", adminOnly, routes.DeleteCrop)

	rv1.GET("/diseases", routes.GetAllDiseases)
	rv1.GET("/diseases/:id", routes.GetDiseaseByID)
	rv1.POST("/diseases", adminOnly, routes.CreateDisease)
	rv1.DELETE("/diseases/:id", adminOnly, routes.DeleteDisease)

	rv1.GET("/soil-types", routes.GetAllSoilTypes)
	rv1.GET("/soil-types/:id", routes.GetSoilTypeByID)
	rv1.POST("/soil-types", adminOnly, routes.CreateSoilType)
	rv1.DELETE("/soil-types/:id", adminOnly, routes.DeleteSoilType)

	rv1.GET("/schedule-rules", routes.GetAllScheduleRules)
	rv1.GET("/schedule-rules/crop/:cropId", routes.GetScheduleRulesByCrop)
	rv1.POST("/schedule-rules", adminOnly, routes.CreateScheduleRule)
	rv1.DELETE("/schedule-rules/:id", adminOnly, routes.DeleteScheduleRule)
}
