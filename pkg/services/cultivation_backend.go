package services

import (
	"context"
	"time"

	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/jakehl/goid"
	"github.com/sirupsen/logrus"
)

var cultivationValidate *validator.Validate

type CultivationServiceBackend struct {
	plansStorage storage.CultivationPlansRepo
	agroData     AgroDataService
	logger       *logrus.Entry
}

type CultivationBuilder struct {
	Logger       *logrus.Entry
	PlansStorage storage.CultivationPlansRepo
	AgroData     AgroDataService
}

func NewCultivationService(builder CultivationBuilder) CultivationService {
	cultivationValidate = validator.New()
	return &CultivationServiceBackend{
		plansStorage: builder.PlansStorage,
		agroData:     builder.AgroData,
		logger:       builder.Logger,
	}
}

func (svc *CultivationServiceBackend) CreatePlan(ctx context.Context, input CreatePlanInput) (*models.CultivationPlan, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := cultivationValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	crop, err := svc.agroData.GetCropByID(ctx, GetCropByIDInput{ID: input.CropID})
	if err != nil {
		return nil, err
	}

	_, err = svc.agroData.GetSoilTypeByID(ctx, GetSoilTypeByIDInput{ID: input.SoilTypeID})
	if err != nil {
		return nil, err
	}

	expectedHarvest := input.ExpectedHarvestAt
	if expectedHarvest.IsZero() && crop.GrowthDays > 0 {
		expectedHarvest = input.PlantedAt.AddDate(0, 0, crop.GrowthDays)
	}

	plan := &models.CultivationPlan{
		ID:                goid.NewV4UUID().String(),
		OwnerUserID:       input.OwnerUserID,
		CropID:            input.CropID,
		SoilTypeID:        input.SoilTypeID,
		PlotName:          input.PlotName,
		AreaHectares:      input.AreaHectares,
		Status:            models.PlanPlanned,
		PlantedAt:         input.PlantedAt,
		ExpectedHarvestAt: expectedHarvest,
		CreationTimestamp: time.Now(),
	}

	plan, err = svc.plansStorage.Insert(ctx, plan)
	if err != nil {
		lFunc.Errorf("could not insert cultivation plan in storage engine: %s", err)
		return nil, err
	}

	return plan, nil
}

func (svc *CultivationServiceBackend) GetPlans(ctx context.Context, input GetPlansInput) (string, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := cultivationValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return "", errs.ErrValidateBadRequest
	}

	return svc.plansStorage.SelectByOwner(ctx, input.OwnerUserID, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *CultivationServiceBackend) GetPlanByID(ctx context.Context, input GetPlanByIDInput) (*models.CultivationPlan, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := cultivationValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, plan, err := svc.plansStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if cultivation plan '%s' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		return nil, errs.ErrPlanNotFound
	}

	// Plans are private. Someone else's plan looks like a missing one.
	if plan.OwnerUserID != input.OwnerUserID {
		lFunc.Warnf("user %s requested plan %s owned by another user", input.OwnerUserID, input.ID)
		return nil, errs.ErrPlanNotFound
	}

	return plan, nil
}

func (svc *CultivationServiceBackend) UpdatePlanStatus(ctx context.Context, input UpdatePlanStatusInput) (*models.CultivationPlan, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := cultivationValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	plan, err := svc.GetPlanByID(ctx, GetPlanByIDInput{ID: input.ID, OwnerUserID: input.OwnerUserID})
	if err != nil {
		return nil, err
	}

	if plan.Status == input.NewStatus {
		return plan, nil
	}

	plan.Status = input.NewStatus
	plan, err = svc.plansStorage.Update(ctx, plan)
	if err != nil {
		lFunc.Errorf("could not update cultivation plan %s: %s", input.ID, err)
		return nil, err
	}

	return plan, nil
}

func (svc *CultivationServiceBackend) DeletePlan(ctx context.Context, input DeletePlanInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := cultivationValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	_, err = svc.GetPlanByID(ctx, GetPlanByIDInput{ID: input.ID, OwnerUserID: input.OwnerUserID})
	if err != nil {
		return err
	}

	return svc.plansStorage.Delete(ctx, input.ID)
}
