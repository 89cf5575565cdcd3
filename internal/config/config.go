// Package config loads the application configuration from defaults, an optional
// YAML file, a .env file and the process environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"fjacquet/spend-insights/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFiles are the .env locations tried by LoadEnv, in order.
var DefaultEnvFiles = []string{".env", filepath.Join("..", ".env")}

// LoadEnv loads the first existing .env file from candidates (DefaultEnvFiles when
// none are given). Variables already set in the environment are not overridden.
// Returns the loaded file, or "" when no file was found.
func LoadEnv(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultEnvFiles
	}

	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", err
		}
		return envFile, nil
	}

	return "", nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrusLogger(config.Log.Level, config.Log.Format)
}
