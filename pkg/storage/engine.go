package storage

import (
	"github.com/agrosense/agrosense/pkg/config"
)

// StorageEngine hands out the per-domain repositories. Repositories are
// created lazily and cached by the concrete engine.
type StorageEngine interface {
	GetProvider() config.StorageProvider
	GetDevicesStorage() (DevicesRepo, error)
	GetTelemetryStorage() (TelemetryRepo, error)
	GetCropsStorage() (CropsRepo, error)
	GetDiseasesStorage() (DiseasesRepo, error)
	GetSoilTypesStorage() (SoilTypesRepo, error)
	GetScheduleRulesStorage() (ScheduleRulesRepo, error)
	GetCultivationPlansStorage() (CultivationPlansRepo, error)
	GetUsersStorage() (UsersRepo, error)
}
