package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type telemetryHttpRoutes struct {
	svc services.TelemetryService
}

func NewTelemetryHttpRoutes(svc services.TelemetryService) *telemetryHttpRoutes {
	return &telemetryHttpRoutes{
		svc: svc,
	}
}

func (r *telemetryHttpRoutes) IngestSensorData(ctx *gin.Context) {
	var requestBody resources.IngestTelemetryBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"success": false, "err": err.Error()})
		return
	}

	if requestBody.DeviceID == "" {
		ctx.JSON(400, gin.H{"success": false, "err": "missing deviceId"})
		return
	}

	update, err := r.svc.IngestSample(ctx.Request.Context(), services.IngestSampleInput{
		PublicDeviceID: requestBody.DeviceID,
		Temperature:    requestBody.Temperature,
		Humidity:       requestBody.Humidity,
		ReadingTime:    requestBody.ReadingTime,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resources.SensorDataResponse{
		Success: true,
		Data:    &update.Sample,
	})
}

func (r *telemetryHttpRoutes) GetLatest(ctx *gin.Context) {
	type uriParams struct {
		DeviceID string `uri:"deviceId" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"success": false, "err": err.Error()})
		return
	}

	sample, err := r.svc.GetLatest(ctx.Request.Context(), services.GetLatestInput{
		PublicDeviceID: params.DeviceID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	// Data stays null for a device that has not reported yet.
	ctx.JSON(200, resources.SensorDataResponse{
		Success: true,
		Data:    sample,
	})
}

func (r *telemetryHttpRoutes) GetHistory(ctx *gin.Context) {
	type uriParams struct {
		DeviceID string `uri:"deviceId" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"success": false, "err": err.Error()})
		return
	}

	input := services.GetHistoryInput{
		PublicDeviceID: params.DeviceID,
	}

	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			ctx.JSON(400, gin.H{"success": false, "err": "invalid 'from' timestamp"})
			return
		}
		input.From = &from
	}

	if toStr := ctx.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			ctx.JSON(400, gin.H{"success": false, "err": "invalid 'to' timestamp"})
			return
		}
		input.To = &to
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			ctx.JSON(400, gin.H{"success": false, "err": "invalid 'limit'"})
			return
		}
		input.Limit = limit
	}

	samples, err := r.svc.GetHistory(ctx.Request.Context(), input)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.SensorHistoryResponse{
		Success: true,
		Data:    samples,
	})
}

func (r *telemetryHttpRoutes) GetHourlyAggregate(ctx *gin.Context) {
	type uriParams struct {
		DeviceID string `uri:"deviceId" binding:"required"`
	}

	var params uriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(400, gin.H{"success": false, "err": err.Error()})
		return
	}

	out, err := r.svc.GetHourlyAggregate(ctx.Request.Context(), services.GetHourlyAggregateInput{
		PublicDeviceID: params.DeviceID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.SensorAggregateResponse{
		Success: true,
		Data:    out.Buckets,
		DeviceInfo: resources.DeviceInfo{
			PublicID: out.Device.PublicID,
			Name:     out.Device.Name,
			Status:   out.Device.Status,
		},
	})
}
