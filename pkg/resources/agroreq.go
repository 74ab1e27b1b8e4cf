package resources

import (
	"time"

	"github.com/agrosense/agrosense/pkg/models"
)

type CreateCropBody struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Season         string `json:"season"`
	GrowthDays     int    `json:"growth_days"`
	Description    string `json:"description"`
}

type CreateDiseaseBody struct {
	Name          string   `json:"name"`
	Symptoms      []string `json:"symptoms"`
	Treatment     string   `json:"treatment"`
	AffectedCrops []string `json:"affected_crops"`
}

type CreateSoilTypeBody struct {
	Name          string   `json:"name"`
	PHRange       string   `json:"ph_range"`
	Description   string   `json:"description"`
	SuitableCrops []string `json:"suitable_crops"`
}

type CreateScheduleRuleBody struct {
	CropID         string `json:"crop_id"`
	Task           string `json:"task"`
	IntervalDays   int    `json:"interval_days"`
	StartDayOffset int    `json:"start_day_offset"`
	EndDayOffset   int    `json:"end_day_offset"`
	Notes          string `json:"notes"`
}

type CreateCultivationPlanBody struct {
	CropID            string    `json:"crop_id"`
	SoilTypeID        string    `json:"soil_type_id"`
	PlotName          string    `json:"plot_name"`
	AreaHectares      float64   `json:"area_hectares"`
	PlantedAt         time.Time `json:"planted_at"`
	ExpectedHarvestAt time.Time `json:"expected_harvest_at"`
}

type UpdatePlanStatusBody struct {
	Status models.PlanStatus `json:"status"`
}

type GetCropsResponse struct {
	IterableList[models.Crop]
}

type GetDiseasesResponse struct {
	IterableList[models.Disease]
}

type GetSoilTypesResponse struct {
	IterableList[models.SoilType]
}

type GetScheduleRulesResponse struct {
	IterableList[models.ScheduleRule]
}

type GetCultivationPlansResponse struct {
	IterableList[models.CultivationPlan]
}
