package admitmap

import (
	"github.com/rs/zerolog"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
)

// config holds client construction settings.
type config struct {
	catalogPath   string
	overridesPath string
	overrides     map[string]schools.SchoolID
	mode          resolve.Mode
	logger        *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		overrides: make(map[string]schools.SchoolID),
		mode:      resolve.ModeStrict,
		logger:    logging.Default(),
	}
}

// Option is a functional option for configuring the client.
type Option func(*config) error

// WithCatalogFile loads the school catalog from a YAML file instead of the
// embedded seed data.
func WithCatalogFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("catalog", path, "catalog path cannot be empty")
		}
		c.catalogPath = path
		return nil
	}
}

// WithOverridesFile loads a manual override table from a YAML file.
func WithOverridesFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("overrides", path, "overrides path cannot be empty")
		}
		c.overridesPath = path
		return nil
	}
}

// WithOverrides installs manual overrides programmatically. Entries win over
// any loaded from a file.
func WithOverrides(overrides map[string]schools.SchoolID) Option {
	return func(c *config) error {
		for name, id := range overrides {
			c.overrides[name] = id
		}
		return nil
	}
}

// WithSupervisedResolution lowers the match threshold for runs where a human
// reviews the provenance report.
func WithSupervisedResolution() Option {
	return func(c *config) error {
		c.mode = resolve.ModeSupervised
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
