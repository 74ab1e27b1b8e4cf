package controllers

import (
	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type devManagerHttpRoutes struct {
	svc services.DeviceManagerService
}

func NewDeviceManagerHttpRoutes(svc services.DeviceManagerService) *devManagerHttpRoutes {
	return &devManagerHttpRoutes{
		svc: svc,
	}
}

// requestUserID pulls the authenticated user identity placed in the request
// context by the JWT middleware. Empty when the request is anonymous.
func requestUserID(ctx *gin.Context) string {
	userID, _ := ctx.Request.Context().Value(agrosense.ContextKeyAuthID).(string)
	return userID
}

func (r *devManagerHttpRoutes) GetStats(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.DeviceFilterableFields)

	stats, err := r.svc.GetDevicesStats(ctx.Request.Context(), services.GetDevicesStatsInput{
		QueryParameters: queryParams,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, stats)
}

func (r *devManagerHttpRoutes) GetAllDevices(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.DeviceFilterableFields)

	devices := []models.Device{}
	nextBookmark, err := r.svc.GetDevices(ctx.Request.Context(), services.GetDevicesInput{
		ListInput: resources.ListInput[models.Device]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(dev models.Device) {
				devices = append(devices, dev)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetDevicesResponse{
		IterableList: resources.IterableList[models.Device]{
			NextBookmark: nextBookmark,
			List:         devices,
		},
	})
}

func (r *devManagerHttpRoutes) GetMyDevices(ctx *gin.Context) {
	queryParams := FilterQuery(ctx.Request, resources.DeviceFilterableFields)

	devices := []models.Device{}
	nextBookmark, err := r.svc.GetDevicesByOwner(ctx.Request.Context(), services.GetDevicesByOwnerInput{
		OwnerUserID: requestUserID(ctx),
		ListInput: resources.ListInput[models.Device]{
			QueryParameters: queryParams,
			ExhaustiveRun:   false,
			ApplyFunc: func(dev models.Device) {
				devices = append(devices, dev)
			},
		},
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.GetDevicesResponse{
		IterableList: resources.IterableList[models.Device]{
			NextBookmark: nextBookmark,
			List:         devices,
		},
	})
}

func (r *devManagerHttpRoutes) CreateDevice(ctx *gin.Context) {
	var requestBody resources.RegisterDeviceBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	device, err := r.svc.CreateDevice(ctx.Request.Context(), services.CreateDeviceInput{
		PublicID: requestBody.PublicID,
		Name:     requestBody.Name,
		Tags:     requestBody.Tags,
		Metadata: requestBody.Metadata,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, device)
}

func (r *devManagerHttpRoutes) GetDeviceByID(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	device, err := r.svc.GetDeviceByID(ctx.Request.Context(), services.GetDeviceByIDInput{
		ID: params.ID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, device)
}

func (r *devManagerHttpRoutes) UpdateDeviceStatus(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	var requestBody resources.UpdateDeviceStatusBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	device, err := r.svc.UpdateDeviceStatus(ctx.Request.Context(), services.UpdateDeviceStatusInput{
		ID:        params.ID,
		NewStatus: requestBody.Status,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, device)
}

func (r *devManagerHttpRoutes) ClaimDevice(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	device, err := r.svc.ClaimDevice(ctx.Request.Context(), services.ClaimDeviceInput{
		ID:     params.ID,
		UserID: requestUserID(ctx),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, device)
}

func (r *devManagerHttpRoutes) ReleaseDevice(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	device, err := r.svc.ReleaseDevice(ctx.Request.Context(), services.ReleaseDeviceInput{
		ID:     params.ID,
		UserID: requestUserID(ctx),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, device)
}

func (r *devManagerHttpRoutes) DeleteDevice(ctx *gin.Context) {
	type uriParams struct {
		ID string `uri:"id" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	err := r.svc.DeleteDevice(ctx.Request.Context(), services.DeleteDeviceInput{
		ID: params.ID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Status(204)
}
