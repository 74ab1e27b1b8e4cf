package controllers

import (
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type agroDataHttpRoutes struct {
	svc services.AgroDataService
}

func NewAgroDataHttpRoutes(svc services.AgroDataService) *agroDataHttpRoutes {
	return &agroDataHttpRoutes{
		svc: svc,
	}
}

func (r *agroDataHttpRoutes) CreateCrop(ctx *gin.Context) {
	var requestBody resources.CreateCropBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	crop, err := r.svc.CreateCrop(ctx.Request.Context(), services.CreateCropInput{
		Name:           requestBody.Name,
		ScientificName: requestBody.ScientificName,
		Season:         requestBody.Season,
		GrowthDays:     requestBody.GrowthDays,
		Description:    requestBody.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, crop)
}

func (r *agroDataHttpRoutes) GetAllCrops(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.CropFilterableFields)

	crops := []models.Crop{}
	nextBookmark, err := r.svc.GetCrops(ctx.Request.Context(), services.GetCropsInput{
		ListInput: resources.ListInput[models.Crop]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(crop models.Crop) {
				crops = append(crops, crop)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetCropsResponse{
		IterableList: resources.IterableList[models.Crop]{
			NextBookmark: nextBookmark,
			List:         crops,
		},
	})
}

func (r *agroDataHttpRoutes) GetCropByID(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	crop, err := r.svc.GetCropByID(ctx.Request.Context(), services.GetCropByIDInput{
		ID: params.ID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, crop)
}

func (r *agroDataHttpRoutes) UpdateCrop(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	var requestBody resources.CreateCropBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	crop, err := r.svc.UpdateCrop(ctx.Request.Context(), services.UpdateCropInput{
		ID:             params.ID,
		Name:           requestBody.Name,
		ScientificName: requestBody.ScientificName,
		Season:         requestBody.Season,
		GrowthDays:     requestBody.GrowthDays,
		Description:    requestBody.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, crop)
}

func (r *agroDataHttpRoutes) DeleteCrop(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	if err := r.svc.DeleteCrop(ctx.Request.Context(), services.DeleteCropInput{ID: params.ID}); err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}

func (r *agroDataHttpRoutes) CreateDisease(ctx *gin.Context) {
	var requestBody resources.CreateDiseaseBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	disease, err := r.svc.CreateDisease(ctx.Request.Context(), services.CreateDiseaseInput{
		Name:          requestBody.Name,
		Symptoms:      requestBody.Symptoms,
		Treatment:     requestBody.Treatment,
		AffectedCrops: requestBody.AffectedCrops,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, disease)
}

func (r *agroDataHttpRoutes) GetAllDiseases(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.DiseaseFilterableFields)

	diseases := []models.Disease{}
	nextBookmark, err := r.svc.GetDiseases(ctx.Request.Context(), services.GetDiseasesInput{
		ListInput: resources.ListInput[models.Disease]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(disease models.Disease) {
				diseases = append(diseases, disease)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetDiseasesResponse{
		IterableList: resources.IterableList[models.Disease]{
			NextBookmark: nextBookmark,
			List:         diseases,
		},
	})
}

func (r *agroDataHttpRoutes) GetDiseaseByID(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	disease, err := r.svc.GetDiseaseByID(ctx.Request.Context(), services.GetDiseaseByIDInput{
		ID: params.ID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, disease)
}

func (r *agroDataHttpRoutes) DeleteDisease(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	if err := r.svc.DeleteDisease(ctx.Request.Context(), services.DeleteDiseaseInput{ID: params.ID}); err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}

func (r *agroDataHttpRoutes) CreateSoilType(ctx *gin.Context) {
	var requestBody resources.CreateSoilTypeBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	soil, err := r.svc.CreateSoilType(ctx.Request.Context(), services.CreateSoilTypeInput{
		Name:          requestBody.Name,
		PHRange:       requestBody.PHRange,
		Description:   requestBody.Description,
		SuitableCrops: requestBody.SuitableCrops,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, soil)
}

func (r *agroDataHttpRoutes) GetAllSoilTypes(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.SoilTypeFilterableFields)

	soils := []models.SoilType{}
	nextBookmark, err := r.svc.GetSoilTypes(ctx.Request.Context(), services.GetSoilTypesInput{
		ListInput: resources.ListInput[models.SoilType]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(soil models.SoilType) {
				soils = append(soils, soil)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetSoilTypesResponse{
		IterableList: resources.IterableList[models.SoilType]{
			NextBookmark: nextBookmark,
			List:         soils,
		},
	})
}

func (r *agroDataHttpRoutes) GetSoilTypeByID(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	soil, err := r.svc.GetSoilTypeByID(ctx.Request.Context(), services.GetSoilTypeByIDInput{
		ID: params.ID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, soil)
}

func (r *agroDataHttpRoutes) DeleteSoilType(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	if err := r.svc.DeleteSoilType(ctx.Request.Context(), services.DeleteSoilTypeInput{ID: params.ID}); err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}

func (r *agroDataHttpRoutes) CreateScheduleRule(ctx *gin.Context) {
	var requestBody resources.CreateScheduleRuleBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	rule, err := r.svc.CreateScheduleRule(ctx.Request.Context(), services.CreateScheduleRuleInput{
		CropID:         requestBody.CropID,
		Task:           requestBody.Task,
		IntervalDays:   requestBody.IntervalDays,
		StartDayOffset: requestBody.StartDayOffset,
		EndDayOffset:   requestBody.EndDayOffset,
		Notes:          requestBody.Notes,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, rule)
}

func (r *agroDataHttpRoutes) GetAllScheduleRules(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.ScheduleRuleFilterableFields)

	rules := []models.ScheduleRule{}
	nextBookmark, err := r.svc.GetScheduleRules(ctx.Request.Context(), services.GetScheduleRulesInput{
		ListInput: resources.ListInput[models.ScheduleRule]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(rule models.ScheduleRule) {
				rules = append(rules, rule)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetScheduleRulesResponse{
		IterableList: resources.IterableList[models.ScheduleRule]{
			NextBookmark: nextBookmark,
			List:         rules,
		},
	})
}

func (r *agroDataHttpRoutes) GetScheduleRulesByCrop(ctx *gin.Context) {
	type uriParams struct {
		CropID string `uri:"cropId" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	queryParams := FilterQuery(ctx.Request, resources.ScheduleRuleFilterableFields)

	rules := []models.ScheduleRule{}
	nextBookmark, err := r.svc.GetScheduleRulesByCrop(ctx.Request.Context(), services.GetScheduleRulesByCropInput{
		CropID: params.CropID,
		ListInput: resources.ListInput[models.ScheduleRule]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(rule models.ScheduleRule) {
				rules = append(rules, rule)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetScheduleRulesResponse{
		IterableList: resources.IterableList[models.ScheduleRule]{
			NextBookmark: nextBookmark,
			List:         rules,
		},
	})
}

func (r *agroDataHttpRoutes) DeleteScheduleRule(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	if err := r.svc.DeleteScheduleRule(ctx.Request.Context(), services.DeleteScheduleRuleInput{ID: params.ID}); err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}
