package models

import (
	"time"
)

type PlanStatus string

const (
	PlanPlanned   PlanStatus = "PLANNED"
	PlanActive    PlanStatus = "ACTIVE"
	PlanHarvested PlanStatus = "HARVESTED"
	PlanAbandoned PlanStatus = "ABANDONED"
)

// CultivationPlan tracks one planting of a crop on a plot, owned by the
// account that created it.
type CultivationPlan struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	OwnerUserID       string     `json:"owner_user_id" gorm:"index"`
	CropID            string     `json:"crop_id"`
	SoilTypeID        string     `json:"soil_type_id"`
	PlotName          string     `json:"plot_name"`
	AreaHectares      float64    `json:"area_hectares"`
	Status            PlanStatus `json:"status"`
	PlantedAt         time.Time  `json:"planted_at"`
	ExpectedHarvestAt time.Time  `json:"expected_harvest_at"`
	CreationTimestamp time.Time  `json:"creation_timestamp"`
}
