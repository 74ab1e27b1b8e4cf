package controllers

import (
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type cultivationHttpRoutes struct {
	svc services.CultivationService
}

func NewCultivationHttpRoutes(svc services.CultivationService) *cultivationHttpRoutes {
	return &cultivationHttpRoutes{
		svc: svc,
	}
}

func (r *cultivationHttpRoutes) CreatePlan(ctx *gin.Context) {
	var requestBody resources.CreateCultivationPlanBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	plan, err := r.svc.CreatePlan(ctx.Request.Context(), services.CreatePlanInput{
		OwnerUserID:       requestUserID(ctx),
		CropID:            requestBody.CropID,
		SoilTypeID:        requestBody.SoilTypeID,
		PlotName:          requestBody.PlotName,
		AreaHectares:      requestBody.AreaHectares,
		PlantedAt:         requestBody.PlantedAt,
		ExpectedHarvestAt: requestBody.ExpectedHarvestAt,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, plan)
}

func (r *cultivationHttpRoutes) GetPlans(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.CultivationPlanFilterableFields)

	plans := []models.CultivationPlan{}
	nextBookmark, err := r.svc.GetPlans(ctx.Request.Context(), services.GetPlansInput{
		OwnerUserID: requestUserID(ctx),
		ListInput: resources.ListInput[models.CultivationPlan]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(plan models.CultivationPlan) {
				plans = append(plans, plan)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetCultivationPlansResponse{
		IterableList: resources.IterableList[models.CultivationPlan]{
			NextBookmark: nextBookmark,
			List:         plans,
		},
	})
}

func (r *cultivationHttpRoutes) GetPlanByID(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	plan, err := r.svc.GetPlanByID(ctx.Request.Context(), services.GetPlanByIDInput{
		ID:          params.ID,
		OwnerUserID: requestUserID(ctx),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, plan)
}

func (r *cultivationHttpRoutes) UpdatePlanStatus(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	var requestBody resources.UpdatePlanStatusBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	plan, err := r.svc.UpdatePlanStatus(ctx.Request.Context(), services.UpdatePlanStatusInput{
		ID:          params.ID,
		OwnerUserID: requestUserID(ctx),
		NewStatus:   requestBody.Status,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, plan)
}

func (r *cultivationHttpRoutes) DeletePlan(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	err := r.svc.DeletePlan(ctx.Request.Context(), services.DeletePlanInput{
		ID:          params.ID,
		OwnerUserID: requestUserID(ctx),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}
