package resources

var DeviceFilterableFields = map[string]FilterFieldType{
	"id":                 StringFilterFieldType,
	"public_id":          StringFilterFieldType,
	"name":               StringFilterFieldType,
	"owner_user_id":      StringFilterFieldType,
	"creation_timestamp": DateFilterFieldType,
	"last_seen":          DateFilterFieldType,
	"status":             EnumFilterFieldType,
	"tags":               StringArrayFilterFieldType,
}

var CropFilterableFields = map[string]FilterFieldType{
	"id":          StringFilterFieldType,
	"name":        StringFilterFieldType,
	"season":      StringFilterFieldType,
	"growth_days": NumberFilterFieldType,
}

var DiseaseFilterableFields = map[string]FilterFieldType{
	"id":   StringFilterFieldType,
	"name": StringFilterFieldType,
}

var SoilTypeFilterableFields = map[string]FilterFieldType{
	"id":   StringFilterFieldType,
	"name": StringFilterFieldType,
}

var ScheduleRuleFilterableFields = map[string]FilterFieldType{
	"id":      StringFilterFieldType,
	"crop_id": StringFilterFieldType,
	"task":    StringFilterFieldType,
}

var CultivationPlanFilterableFields = map[string]FilterFieldType{
	"id":            StringFilterFieldType,
	"owner_user_id": StringFilterFieldType,
	"crop_id":       StringFilterFieldType,
	"status":        EnumFilterFieldType,
	"planted_at":    DateFilterFieldType,
}
