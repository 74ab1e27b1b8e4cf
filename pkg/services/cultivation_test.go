package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/agrosense/agrosense/pkg/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cultivationTestBed struct {
	agroData    AgroDataService
	cultivation CultivationService
	crop        *models.Crop
	soil        *models.SoilType
}

func setupCultivation(t *testing.T) *cultivationTestBed {
	t.Helper()
	ctx := context.Background()

	logger := helpers.SetupLogger(config.Trace, "AgroSense", "ServiceTest")
	engine, err := postgres.NewStorageEngine(logger, config.PluggableStorageEngine{
		Provider: config.SQLite,
		SQLite: config.SQLitePSEConfig{
			DatabasePath: filepath.Join(t.TempDir(), "cultivation-svc.db"),
		},
	})
	require.NoError(t, err)

	cropsRepo, err := engine.GetCropsStorage()
	require.NoError(t, err)
	diseasesRepo, err := engine.GetDiseasesStorage()
	require.NoError(t, err)
	soilsRepo, err := engine.GetSoilTypesStorage()
	require.NoError(t, err)
	schedulesRepo, err := engine.GetScheduleRulesStorage()
	require.NoError(t, err)
	plansRepo, err := engine.GetCultivationPlansStorage()
	require.NoError(t, err)

	agroData := NewAgroDataService(AgroDataBuilder{
		Logger:           logger,
		CropsStorage:     cropsRepo,
		DiseasesStorage:  diseasesRepo,
		SoilTypesStorage: soilsRepo,
		SchedulesStorage: schedulesRepo,
	})

	cultivation := NewCultivationService(CultivationBuilder{
		Logger:       logger,
		PlansStorage: plansRepo,
		AgroData:     agroData,
	})

	crop, err := agroData.CreateCrop(ctx, CreateCropInput{
		Name:       "Tomato",
		Season:     "summer",
		GrowthDays: 90,
	})
	require.NoError(t, err)

	soil, err := agroData.CreateSoilType(ctx, CreateSoilTypeInput{
		Name:    "Loam",
		PHRange: "6.0-7.0",
	})
	require.NoError(t, err)

	return &cultivationTestBed{
		agroData:    agroData,
		cultivation: cultivation,
		crop:        crop,
		soil:        soil,
	}
}

func TestCreatePlanDerivesHarvestDate(t *testing.T) {
	ctx := context.Background()
	tb := setupCultivation(t)

	planted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := tb.cultivation.CreatePlan(ctx, CreatePlanInput{
		OwnerUserID: "user-1",
		CropID:      tb.crop.ID,
		SoilTypeID:  tb.soil.ID,
		PlotName:    "north plot",
		PlantedAt:   planted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanPlanned, plan.Status)
	assert.Equal(t, planted.AddDate(0, 0, 90), plan.ExpectedHarvestAt,
		"harvest date derives from crop growth days when not given")
}

func TestCreatePlanUnknownReferences(t *testing.T) {
	ctx := context.Background()
	tb := setupCultivation(t)

	_, err := tb.cultivation.CreatePlan(ctx, CreatePlanInput{
		OwnerUserID: "user-1",
		CropID:      "missing-crop",
		SoilTypeID:  tb.soil.ID,
		PlotName:    "north plot",
		PlantedAt:   time.Now(),
	})
	assert.ErrorIs(t, err, errs.ErrCropNotFound)

	_, err = tb.cultivation.CreatePlan(ctx, CreatePlanInput{
		OwnerUserID: "user-1",
		CropID:      tb.crop.ID,
		SoilTypeID:  "missing-soil",
		PlotName:    "north plot",
		PlantedAt:   time.Now(),
	})
	assert.ErrorIs(t, err, errs.ErrSoilTypeNotFound)
}

func TestPlansAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	tb := setupCultivation(t)

	plan, err := tb.cultivation.CreatePlan(ctx, CreatePlanInput{
		OwnerUserID: "user-1",
		CropID:      tb.crop.ID,
		SoilTypeID:  tb.soil.ID,
		PlotName:    "north plot",
		PlantedAt:   time.Now(),
	})
	require.NoError(t, err)

	_, err = tb.cultivation.GetPlanByID(ctx, GetPlanByIDInput{ID: plan.ID, OwnerUserID: "user-2"})
	assert.ErrorIs(t, err, errs.ErrPlanNotFound, "foreign plans look like missing ones")

	mine := []models.CultivationPlan{}
	_, err = tb.cultivation.GetPlans(ctx, GetPlansInput{
		OwnerUserID: "user-2",
		ListInput: resources.ListInput[models.CultivationPlan]{
			ExhaustiveRun: true,
			ApplyFunc: func(p models.CultivationPlan) {
				mine = append(mine, p)
			},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestUpdatePlanStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	tb := setupCultivation(t)

	plan, err := tb.cultivation.CreatePlan(ctx, CreatePlanInput{
		OwnerUserID: "user-1",
		CropID:      tb.crop.ID,
		SoilTypeID:  tb.soil.ID,
		PlotName:    "north plot",
		PlantedAt:   time.Now(),
	})
	require.NoError(t, err)

	updated, err := tb.cultivation.UpdatePlanStatus(ctx, UpdatePlanStatusInput{
		ID:          plan.ID,
		OwnerUserID: "user-1",
		NewStatus:   models.PlanActive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanActive, updated.Status)

	err = tb.cultivation.DeletePlan(ctx, DeletePlanInput{ID: plan.ID, OwnerUserID: "user-1"})
	require.NoError(t, err)

	_, err = tb.cultivation.GetPlanByID(ctx, GetPlanByIDInput{ID: plan.ID, OwnerUserID: "user-1"})
	assert.ErrorIs(t, err, errs.ErrPlanNotFound)
}

func TestScheduleRulesByCrop(t *testing.T) {
	ctx := context.Background()
	tb := setupCultivation(t)

	_, err := tb.agroData.CreateScheduleRule(ctx, CreateScheduleRuleInput{
		CropID:       tb.crop.ID,
		Task:         "irrigation",
		IntervalDays: 3,
		EndDayOffset: 30,
	})
	require.NoError(t, err)

	_, err = tb.agroData.CreateScheduleRule(ctx, CreateScheduleRuleInput{
		CropID:       "missing-crop",
		Task:         "irrigation",
		IntervalDays: 3,
	})
	assert.ErrorIs(t, err, errs.ErrCropNotFound)

	rules := []models.ScheduleRule{}
	_, err = tb.agroData.GetScheduleRulesByCrop(ctx, GetScheduleRulesByCropInput{
		CropID: tb.crop.ID,
		ListInput: resources.ListInput[models.ScheduleRule]{
			ExhaustiveRun: true,
			ApplyFunc: func(r models.ScheduleRule) {
				rules = append(rules, r)
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "irrigation", rules[0].Task)
}
