package services

import (
	"context"

	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
)

type AgroDataService interface {
	CreateCrop(ctx context.Context, input CreateCropInput) (*models.Crop, error)
	GetCrops(ctx context.Context, input GetCropsInput) (string, error)
	GetCropByID(ctx context.Context, input GetCropByIDInput) (*models.Crop, error)
	UpdateCrop(ctx context.Context, input UpdateCropInput) (*models.Crop, error)
	DeleteCrop(ctx context.Context, input DeleteCropInput) error

	CreateDisease(ctx context.Context, input CreateDiseaseInput) (*models.Disease, error)
	GetDiseases(ctx context.Context, input GetDiseasesInput) (string, error)
	GetDiseaseByID(ctx context.Context, input GetDiseaseByIDInput) (*models.Disease, error)
	DeleteDisease(ctx context.Context, input DeleteDiseaseInput) error

	CreateSoilType(ctx context.Context, input CreateSoilTypeInput) (*models.SoilType, error)
	GetSoilTypes(ctx context.Context, input GetSoilTypesInput) (string, error)
	GetSoilTypeByID(ctx context.Context, input GetSoilTypeByIDInput) (*models.SoilType, error)
	DeleteSoilType(ctx context.Context, input DeleteSoilTypeInput) error

	CreateScheduleRule(ctx context.Context, input CreateScheduleRuleInput) (*models.ScheduleRule, error)
	GetScheduleRules(ctx context.Context, input GetScheduleRulesInput) (string, error)
	GetScheduleRulesByCrop(ctx context.Context, input GetScheduleRulesByCropInput) (string, error)
	DeleteScheduleRule(ctx context.Context, input DeleteScheduleRuleInput) error
}

type CreateCropInput struct {
	Name           string `validate:"required"`
	ScientificName string
	Season         string
	GrowthDays     int
	Description    string
}

type GetCropsInput struct {
	resources.ListInput[models.Crop]
}

type GetCropByIDInput struct {
	ID string `validate:"required"`
}

type UpdateCropInput struct {
	ID             string `validate:"required"`
	Name           string `validate:"required"`
	ScientificName string
	Season         string
	GrowthDays     int
	Description    string
}

type DeleteCropInput struct {
	ID string `validate:"required"`
}

type CreateDiseaseInput struct {
	Name          string   `validate:"required"`
	Symptoms      []string `validate:"required,min=1"`
	Treatment     string
	AffectedCrops []string
}

type GetDiseasesInput struct {
	resources.ListInput[models.Disease]
}

type GetDiseaseByIDInput struct {
	ID string `validate:"required"`
}

type DeleteDiseaseInput struct {
	ID string `validate:"required"`
}

type CreateSoilTypeInput struct {
	Name          string `validate:"required"`
	PHRange       string
	Description   string
	SuitableCrops []string
}

type GetSoilTypesInput struct {
	resources.ListInput[models.SoilType]
}

type GetSoilTypeByIDInput struct {
	ID string `validate:"required"`
}

type DeleteSoilTypeInput struct {
	ID string `validate:"required"`
}

type CreateScheduleRuleInput struct {
	CropID         string `validate:"required"`
	Task           string `validate:"required"`
	IntervalDays   int    `validate:"required,gt=0"`
	StartDayOffset int
	EndDayOffset   int
	Notes          string
}

type GetScheduleRulesInput struct {
	resources.ListInput[models.ScheduleRule]
}

type GetScheduleRulesByCropInput struct {
	CropID string `validate:"required"`
	resources.ListInput[models.ScheduleRule]
}

type DeleteScheduleRuleInput struct {
	ID string `validate:"required"`
}
