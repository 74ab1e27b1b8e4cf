package controllers

import (
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type authHttpRoutes struct {
	svc services.AuthService
}

func NewAuthHttpRoutes(svc services.AuthService) *authHttpRoutes {
	return &authHttpRoutes{
		svc: svc,
	}
}

func (r *authHttpRoutes) Register(ctx *gin.Context) {
	var requestBody resources.RegisterUserBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	user, err := r.svc.Register(ctx.Request.Context(), services.RegisterInput{
		Email:    requestBody.Email,
		FullName: requestBody.FullName,
		Password: requestBody.Password,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(201, user)
}

func (r *authHttpRoutes) Login(ctx *gin.Context) {
	var requestBody resources.LoginBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	out, err := r.svc.Login(ctx.Request.Context(), services.LoginInput{
		Email:    requestBody.Email,
		Password: requestBody.Password,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(200, resources.LoginResponse{
		Token: out.Token,
		User:  *out.User,
	})
}
