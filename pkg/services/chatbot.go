package services

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
)

type ChatbotService interface {
	Diagnose(ctx context.Context, input DiagnoseInput) ([]DiagnoseMatch, error)
}

type DiagnoseInput struct {
	Description string `validate:"required"`
}

// DiagnoseMatch ranks a disease against the described symptoms. Score is the
// number of catalogued symptoms whose words all appear in the description.
type DiagnoseMatch struct {
	Disease         models.Disease `json:"disease"`
	MatchedSymptoms []string       `json:"matched_symptoms"`
	Score           int            `json:"score"`
}
