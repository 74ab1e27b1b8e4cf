package postgres

import (
	"fmt"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/storage"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GormStorageEngine serves every domain repository from a single database
// connection. Repositories are initialized lazily and cached; table schemas
// are migrated the first time a repository is requested.
type GormStorageEngine struct {
	provider config.StorageProvider
	db       *gorm.DB
	logger   *log.Entry

	devices   storage.DevicesRepo
	telemetry storage.TelemetryRepo
	crops     storage.CropsRepo
	diseases  storage.DiseasesRepo
	soils     storage.SoilTypesRepo
	schedules storage.ScheduleRulesRepo
	plans     storage.CultivationPlansRepo
	users     storage.UsersRepo
}

func NewStorageEngine(logger *log.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
	var db *gorm.DB
	var err error

	switch conf.Provider {
	case config.Postgres:
		db, err = CreatePostgresDBConnection(logger, conf.Postgres)
	case config.SQLite:
		db, err = CreateSQLiteDBConnection(logger, conf.SQLite)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", conf.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("could not connect to %s database: %w", conf.Provider, err)
	}

	return &GormStorageEngine{
		provider: conf.Provider,
		db:       db,
		logger:   logger,
	}, nil
}

func (s *GormStorageEngine) GetProvider() config.StorageProvider {
	return s.provider
}

func (s *GormStorageEngine) GetDevicesStorage() (storage.DevicesRepo, error) {
	if s.devices == nil {
		repo, err := NewDevicesRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize devices storage: %w", err)
		}

		s.devices = repo
	}

	return s.devices, nil
}

func (s *GormStorageEngine) GetTelemetryStorage() (storage.TelemetryRepo, error) {
	if s.telemetry == nil {
		repo, err := NewTelemetryRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize telemetry storage: %w", err)
		}

		s.telemetry = repo
	}

	return s.telemetry, nil
}

func (s *GormStorageEngine) GetCropsStorage() (storage.CropsRepo, error) {
	if s.crops == nil {
		repo, err := NewCropsRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize crops storage: %w", err)
		}

		s.crops = repo
	}

	return s.crops, nil
}

func (s *GormStorageEngine) GetDiseasesStorage() (storage.DiseasesRepo, error) {
	if s.diseases == nil {
		repo, err := NewDiseasesRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize diseases storage: %w", err)
		}

		s.diseases = repo
	}

	return s.diseases, nil
}

func (s *GormStorageEngine) GetSoilTypesStorage() (storage.SoilTypesRepo, error) {
	if s.soils == nil {
		repo, err := NewSoilTypesRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize soil types storage: %w", err)
		}

		s.soils = repo
	}

	return s.soils, nil
}

func (s *GormStorageEngine) GetScheduleRulesStorage() (storage.ScheduleRulesRepo, error) {
	if s.schedules == nil {
		repo, err := NewScheduleRulesRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize schedule rules storage: %w", err)
		}

		s.schedules = repo
	}

	return s.schedules, nil
}

func (s *GormStorageEngine) GetCultivationPlansStorage() (storage.CultivationPlansRepo, error) {
	if s.plans == nil {
		repo, err := NewCultivationPlansRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize cultivation plans storage: %w", err)
		}

		s.plans = repo
	}

	return s.plans, nil
}

func (s *GormStorageEngine) GetUsersStorage() (storage.UsersRepo, error) {
	if s.users == nil {
		repo, err := NewUsersRepository(s.logger, s.db)
		if err != nil {
			return nil, fmt.Errorf("could not initialize users storage: %w", err)
		}

		s.users = repo
	}

	return s.users, nil
}
