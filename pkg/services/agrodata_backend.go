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

var agroDataValidate *validator.Validate

type AgroDataServiceBackend struct {
	cropsStorage     storage.CropsRepo
	diseasesStorage  storage.DiseasesRepo
	soilsStorage     storage.SoilTypesRepo
	schedulesStorage storage.ScheduleRulesRepo
	logger           *logrus.Entry
}

type AgroDataBuilder struct {
	Logger           *logrus.Entry
	CropsStorage     storage.CropsRepo
	DiseasesStorage  storage.DiseasesRepo
	SoilTypesStorage storage.SoilTypesRepo
	SchedulesStorage storage.ScheduleRulesRepo
}

func NewAgroDataService(builder AgroDataBuilder) AgroDataService {
	agroDataValidate = validator.New()
	return &AgroDataServiceBackend{
		cropsStorage:     builder.CropsStorage,
		diseasesStorage:  builder.DiseasesStorage,
		soilsStorage:     builder.SoilTypesStorage,
		schedulesStorage: builder.SchedulesStorage,
		logger:           builder.Logger,
	}
}

func (svc *AgroDataServiceBackend) CreateCrop(ctx context.Context, input CreateCropInput) (*models.Crop, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.cropsStorage.SelectExistsByName(ctx, input.Name)
	if err != nil {
		lFunc.Errorf("could not check if crop '%s' exists in storage engine: %s", input.Name, err)
		return nil, err
	} else if exists {
		lFunc.Errorf("crop %s already exists", input.Name)
		return nil, errs.ErrCropAlreadyExists
	}

	crop := &models.Crop{
		ID:                goid.NewV4UUID().String(),
		Name:              input.Name,
		ScientificName:    input.ScientificName,
		Season:            input.Season,
		GrowthDays:        input.GrowthDays,
		Description:       input.Description,
		CreationTimestamp: time.Now(),
	}

	return svc.cropsStorage.Insert(ctx, crop)
}

func (svc *AgroDataServiceBackend) GetCrops(ctx context.Context, input GetCropsInput) (string, error) {
	return svc.cropsStorage.SelectAll(ctx, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *AgroDataServiceBackend) GetCropByID(ctx context.Context, input GetCropByIDInput) (*models.Crop, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, crop, err := svc.cropsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if crop '%s' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		return nil, errs.ErrCropNotFound
	}

	return crop, nil
}

func (svc *AgroDataServiceBackend) UpdateCrop(ctx context.Context, input UpdateCropInput) (*models.Crop, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	crop, err := svc.GetCropByID(ctx, GetCropByIDInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	crop.Name = input.Name
	crop.ScientificName = input.ScientificName
	crop.Season = input.Season
	crop.GrowthDays = input.GrowthDays
	crop.Description = input.Description

	crop, err = svc.cropsStorage.Update(ctx, crop)
	if err != nil {
		lFunc.Errorf("could not update crop %s: %s", input.ID, err)
		return nil, err
	}

	return crop, nil
}

func (svc *AgroDataServiceBackend) DeleteCrop(ctx context.Context, input DeleteCropInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	_, err = svc.GetCropByID(ctx, GetCropByIDInput{ID: input.ID})
	if err != nil {
		return err
	}

	return svc.cropsStorage.Delete(ctx, input.ID)
}

func (svc *AgroDataServiceBackend) CreateDisease(ctx context.Context, input CreateDiseaseInput) (*models.Disease, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	if input.AffectedCrops == nil {
		input.AffectedCrops = []string{}
	}

	disease := &models.Disease{
		ID:                goid.NewV4UUID().String(),
		Name:              input.Name,
		Symptoms:          input.Symptoms,
		Treatment:         input.Treatment,
		AffectedCrops:     input.AffectedCrops,
		CreationTimestamp: time.Now(),
	}

	return svc.diseasesStorage.Insert(ctx, disease)
}

func (svc *AgroDataServiceBackend) GetDiseases(ctx context.Context, input GetDiseasesInput) (string, error) {
	return svc.diseasesStorage.SelectAll(ctx, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *AgroDataServiceBackend) GetDiseaseByID(ctx context.Context, input GetDiseaseByIDInput) (*models.Disease, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, disease, err := svc.diseasesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if disease '%s' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		return nil, errs.ErrDiseaseNotFound
	}

	return disease, nil
}

func (svc *AgroDataServiceBackend) DeleteDisease(ctx context.Context, input DeleteDiseaseInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	_, err = svc.GetDiseaseByID(ctx, GetDiseaseByIDInput{ID: input.ID})
	if err != nil {
		return err
	}

	return svc.diseasesStorage.Delete(ctx, input.ID)
}

func (svc *AgroDataServiceBackend) CreateSoilType(ctx context.Context, input CreateSoilTypeInput) (*models.SoilType, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	if input.SuitableCrops == nil {
		input.SuitableCrops = []string{}
	}

	soil := &models.SoilType{
		ID:                goid.NewV4UUID().String(),
		Name:              input.Name,
		PHRange:           input.PHRange,
		Description:       input.Description,
		SuitableCrops:     input.SuitableCrops,
		CreationTimestamp: time.Now(),
	}

	return svc.soilsStorage.Insert(ctx, soil)
}

func (svc *AgroDataServiceBackend) GetSoilTypes(ctx context.Context, input GetSoilTypesInput) (string, error) {
	return svc.soilsStorage.SelectAll(ctx, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *AgroDataServiceBackend) GetSoilTypeByID(ctx context.Context, input GetSoilTypeByIDInput) (*models.SoilType, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, soil, err := svc.soilsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if soil type '%s' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		return nil, errs.ErrSoilTypeNotFound
	}

	return soil, nil
}

func (svc *AgroDataServiceBackend) DeleteSoilType(ctx context.Context, input DeleteSoilTypeInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	_, err = svc.GetSoilTypeByID(ctx, GetSoilTypeByIDInput{ID: input.ID})
	if err != nil {
		return err
	}

	return svc.soilsStorage.Delete(ctx, input.ID)
}

func (svc *AgroDataServiceBackend) CreateScheduleRule(ctx context.Context, input CreateScheduleRuleInput) (*models.ScheduleRule, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	// Rules must hang off a real crop.
	_, err = svc.GetCropByID(ctx, GetCropByIDInput{ID: input.CropID})
	if err != nil {
		return nil, err
	}

	rule := &models.ScheduleRule{
		ID:                goid.NewV4UUID().String(),
		CropID:            input.CropID,
		Task:              input.Task,
		IntervalDays:      input.IntervalDays,
		StartDayOffset:    input.StartDayOffset,
		EndDayOffset:      input.EndDayOffset,
		Notes:             input.Notes,
		CreationTimestamp: time.Now(),
	}

	return svc.schedulesStorage.Insert(ctx, rule)
}

func (svc *AgroDataServiceBackend) GetScheduleRules(ctx context.Context, input GetScheduleRulesInput) (string, error) {
	return svc.schedulesStorage.SelectAll(ctx, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *AgroDataServiceBackend) GetScheduleRulesByCrop(ctx context.Context, input GetScheduleRulesByCropInput) (string, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return "", errs.ErrValidateBadRequest
	}

	return svc.schedulesStorage.SelectByCrop(ctx, input.CropID, input.ExhaustiveRun, input.ApplyFunc, input.QueryParameters)
}

func (svc *AgroDataServiceBackend) DeleteScheduleRule(ctx context.Context, input DeleteScheduleRuleInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := agroDataValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	exists, _, err := svc.schedulesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("could not check if schedule rule '%s' exists in storage engine: %s", input.ID, err)
		return err
	} else if !exists {
		return errs.ErrScheduleRuleNotFound
	}

	return svc.schedulesStorage.Delete(ctx, input.ID)
}
