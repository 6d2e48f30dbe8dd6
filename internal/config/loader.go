package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"webdam/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/webdam"
	configFileName = "config.yaml"
)

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from a single specified directory.
// The directory should contain config.yaml; a missing file yields the
// defaults, a malformed one is an error.
func LoadConfig(configPath string) (WebdamConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("Config", "Error loading config.yaml from %s: %s", configFilePath, err)
		return WebdamConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		// config malformed
		return WebdamConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	applyEnvOverrides(&config)

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// applyEnvOverrides lets credentials come from the environment so they
// never have to live in a file.
func applyEnvOverrides(config *WebdamConfig) {
	if v := os.Getenv("WEBDAM_USERNAME"); v != "" {
		config.API.Username = v
	}
	if v := os.Getenv("WEBDAM_PASSWORD"); v != "" {
		config.API.Password = v
	}
	if v := os.Getenv("WEBDAM_CLIENT_ID"); v != "" {
		config.OAuth.ClientID = v
	}
	if v := os.Getenv("WEBDAM_CLIENT_SECRET"); v != "" {
		config.OAuth.ClientSecret = v
	}
}
