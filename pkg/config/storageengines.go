package config

type PluggableStorageEngine struct {
	LogLevel LogLevel `mapstructure:"log_level"`

	Provider StorageProvider `mapstructure:"provider"`

	Postgres PostgresPSEConfig `mapstructure:"postgres"`
	SQLite   SQLitePSEConfig   `mapstructure:"sqlite"`
}

type PostgresPSEConfig struct {
	Hostname string   `mapstructure:"hostname"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password Password `mapstructure:"password"`
	Database string   `mapstructure:"database"`
}

type SQLitePSEConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	InMemory     bool   `mapstructure:"in_memory"`
}

type StorageProvider string

const (
	Postgres StorageProvider = "postgres"
	SQLite   StorageProvider = "sqlite"
)
