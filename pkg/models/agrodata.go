package models

import (
	"time"
)

type Crop struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex"`
	ScientificName    string    `json:"scientific_name"`
	Season            string    `json:"season"`
	GrowthDays        int       `json:"growth_days"`
	Description       string    `json:"description"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}

type Disease struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex"`
	Symptoms          []string  `json:"symptoms" gorm:"serializer:json"`
	Treatment         string    `json:"treatment"`
	AffectedCrops     []string  `json:"affected_crops" gorm:"serializer:json"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}

type SoilType struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex"`
	PHRange           string    `json:"ph_range"`
	Description       string    `json:"description"`
	SuitableCrops     []string  `json:"suitable_crops" gorm:"serializer:json"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}

// ScheduleRule describes a recurring agronomic task for a crop, e.g.
// "irrigate every 3 days during the first 30 days".
type ScheduleRule struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	CropID            string    `json:"crop_id" gorm:"index"`
	Task              string    `json:"task"`
	IntervalDays      int       `json:"interval_days"`
	StartDayOffset    int       `json:"start_day_offset"`
	EndDayOffset      int       `json:"end_day_offset"`
	Notes             string    `json:"notes"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}
