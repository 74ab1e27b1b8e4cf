package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

func readConfig[E any](configFilePath string, defaults *E) (*E, error) {
	vp := viper.New()
	defaultsMap := map[string]interface{}{}

	if defaults != nil {
		mapstructure.Decode(defaults, &defaultsMap)

		for key, value := range defaultsMap {
			if value != nil && value != "" {
				vp.SetDefault(key, value)
			}
		}
	}

	vp.SetConfigFile(configFilePath)
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error while processing config file: %w", err)
	}

	var config E
	err := vp.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}

func LoadConfig[E any](defaults *E) (*E, error) {
	var err error
	var conf *E

	configFileEnvVar := "AGROSENSE_CONFIG_FILE"
	configFileEnv := os.Getenv(configFileEnvVar)
	loadStandardPaths := true

	if configFileEnv != "" {
		loadStandardPaths = false
		log.Infof("loading config file from %s", configFileEnv)
		conf, err = readConfig[E](configFileEnv, defaults)

		if err != nil {
			log.Warnf("failed to load config file specified in ENV '%s' variable. will try to load from standard paths: %s", configFileEnvVar, err)
			loadStandardPaths = true
		}
	} else {
		log.Infof("ENV '%s' variable not set, will try to load from standard paths", configFileEnvVar)
	}

	if loadStandardPaths {
		conf, err = readConfig[E]("/etc/agrosense/config.yml", defaults)
	}
	if err != nil {
		return nil, err
	}

	return conf, nil
}
