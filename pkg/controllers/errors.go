package controllers

import (
	"errors"

	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinels onto HTTP statuses. Unknown errors
// become a generic 500 without leaking internals.
func writeServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidateBadRequest):
		ctx.JSON(400, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrDeviceNotFound),
		errors.Is(err, errs.ErrCropNotFound),
		errors.Is(err, errs.ErrDiseaseNotFound),
		errors.Is(err, errs.ErrSoilTypeNotFound),
		errors.Is(err, errs.ErrScheduleRuleNotFound),
		errors.Is(err, errs.ErrPlanNotFound),
		errors.Is(err, errs.ErrUserNotFound):
		ctx.JSON(404, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrDeviceAlreadyExists),
		errors.Is(err, errs.ErrCropAlreadyExists),
		errors.Is(err, errs.ErrUserAlreadyExists),
		errors.Is(err, errs.ErrDeviceAlreadyClaimed):
		ctx.JSON(409, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrDeviceNotClaimed):
		ctx.JSON(400, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrInvalidCredentials):
		ctx.JSON(401, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		ctx.JSON(403, gin.H{"err": err.Error()})
	default:
		ctx.JSON(500, gin.H{"err": "internal error"})
	}
}
