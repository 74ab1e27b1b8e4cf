package services

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type CultivationService interface {
	CreatePlan(ctx context.Context, input CreatePlanInput) (*models.CultivationPlan, error)
	GetPlans(ctx context.Context, input GetPlansInput) (string, error)
	GetPlanByID(ctx context.Context, input GetPlanByIDInput) (*models.CultivationPlan, error)
	UpdatePlanStatus(ctx context.Context, input UpdatePlanStatusInput) (*models.CultivationPlan, error)
	DeletePlan(ctx context.Context, input DeletePlanInput) error
}

type CreatePlanInput struct {
	OwnerUserID       string `validate:"required"`
	CropID            string `validate:"required"`
	SoilTypeID        string `validate:"required"`
	PlotName          string `validate:"required"`
	AreaHectares      float64
	PlantedAt         time.Time `validate:"required"`
	ExpectedHarvestAt time.Time
}

type GetPlansInput struct {
	OwnerUserID string `validate:"required"`
	resources.ListInput[models.CultivationPlan]
}

type GetPlanByIDInput struct {
	ID          string `validate:"required"`
	OwnerUserID string `validate:"required"`
}

type UpdatePlanStatusInput struct {
	ID          string            `validate:"required"`
	OwnerUserID string            `validate:"required"`
	NewStatus   models.PlanStatus `validate:"required"`
}

type DeletePlanInput struct {
	ID          string `validate:"required"`
	OwnerUserID string `validate:"required"`
}
