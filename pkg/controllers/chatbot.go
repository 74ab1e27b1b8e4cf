package controllers

import (
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-gonic/gin"
)

type chatbotHttpRoutes struct {
	svc services.ChatbotService
}

func NewChatbotHttpRoutes(svc services.ChatbotService) *chatbotHttpRoutes {
	return &chatbotHttpRoutes{
		svc: svc,
	}
}

func (r *chatbotHttpRoutes) Diagnose(ctx *gin.Context) {
	var requestBody resources.DiagnoseBody
	if err := ctx.BindJSON(&requestBody); err != nil {
		ctx.JSON(400, gin.H{"err": err.Error()})
		return
	}

	matches, err := r.svc.Diagnose(ctx.Request.Context(), services.DiagnoseInput{
		Description: requestBody.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	out := make([]resources.DiagnoseMatch, 0, len(matches))
	for _, match := range matches {
		out = append(out, resources.DiagnoseMatch{
			Disease:         match.Disease,
			MatchedSymptoms: match.MatchedSymptoms,
			Score:           match.Score,
		})
	}

	ctx.JSON(200, resources.DiagnoseResponse{
		Success: true,
		Matches: out,
	})
}
