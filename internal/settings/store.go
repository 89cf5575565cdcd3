// Package settings loads and saves the user preferences document that lists the
// currencies and stocks shown on the main page.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the default settings location.
var DefaultFile = filepath.Join("data", "user_settings.json")

// Store reads the settings document at a fixed path. The format follows the file
// extension: .yaml/.yml are YAML, anything else JSON.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a store for path (DefaultFile when empty).
func NewStore(path string, logger logging.Logger) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path, logger: logging.OrNop(logger)}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings. A missing, empty or malformed document yields empty
// lists; the failure is logged, never returned.
func (s *Store) Load() models.UserSettings {
	data, err := fileutils.ReadFile(s.path)
	if err != nil {
		var notFound *parsererror.FileNotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("Settings file not found, using empty settings", logging.F(logging.FieldFile, s.path))
		} else {
			s.logger.WithError(err).Warn("Cannot read settings file", logging.F(logging.FieldFile, s.path))
		}
		return models.EmptySettings()
	}

	if strings.TrimSpace(string(data)) == "" {
		return models.EmptySettings()
	}

	var settings models.UserSettings
	if err := s.unmarshal(data, &settings); err != nil {
		s.logger.WithError(err).Warn("Malformed settings file, using empty settings", logging.F(logging.FieldFile, s.path))
		return models.EmptySettings()
	}

	settings = settings.Normalized()
	s.logger.Debug("Loaded user settings",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(settings.Currencies)+len(settings.Stocks)))

	return settings
}

// Save writes settings, creating parent directories when needed.
func (s *Store) Save(settings models.UserSettings) error {
	settings = settings.Normalized()

	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(settings)
	} else {
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := fileutils.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Saved user settings", logging.F(logging.FieldFile, s.path))
	return nil
}

func (s *Store) unmarshal(data []byte, settings *models.UserSettings) error {
	if s.isYAML() {
		return yaml.Unmarshal(data, settings)
	}
	return json.Unmarshal(data, settings)
}

func (s *Store) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
