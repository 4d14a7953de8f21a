// Package app provides the application context and dependency management
// for the admitmap CLI. It centralizes configuration, logging, and the
// admitmap client behind one lazily-initialized App.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/admitmap/admitmap"
	"github.com/admitmap/admitmap/pkg/errors"
)

// App represents the admitmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client *admitmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the admitmap client, creating it lazily if needed.
// Thread-safe; only one instance is ever created.
func (a *App) Client() (*admitmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	client, err := admitmap.New(a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = client
	return client, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []admitmap.Option {
	opts := []admitmap.Option{
		admitmap.WithLogger(a.logger),
	}

	if a.config.CatalogPath != "" {
		opts = append(opts, admitmap.WithCatalogFile(a.config.CatalogPath))
	}
	if a.config.OverridesPath != "" {
		opts = append(opts, admitmap.WithOverridesFile(a.config.OverridesPath))
	}
	if a.config.Supervised {
		opts = append(opts, admitmap.WithSupervisedResolution())
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(client *admitmap.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
