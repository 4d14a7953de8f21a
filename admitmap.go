// Package admitmap ties the school registry, entity resolution, enrichment,
// and fit classification together behind one client. A client loads its
// catalog once (embedded seed data by default), then serves concurrent
// reads; enrichment builds a new registry and swaps it in atomically.
package admitmap

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/admitmap/admitmap/pkg/classify"
	"github.com/admitmap/admitmap/pkg/enrich"
	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/schools/embedded"
	"github.com/admitmap/admitmap/pkg/sources"
)

// Client is the top-level entry point.
type Client struct {
	mu       sync.RWMutex
	registry *schools.Registry
	resolver *resolve.Resolver

	config    *config
	overrides map[string]schools.SchoolID
	logger    *zerolog.Logger
}

// New creates a client with the given options. With no options it loads the
// embedded seed catalog and resolves strictly with no overrides.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	c := &Client{config: cfg, logger: cfg.logger}

	registry, err := c.loadRegistry()
	if err != nil {
		return nil, err
	}

	overrides, err := c.loadOverrides()
	if err != nil {
		return nil, err
	}

	resolver, err := resolve.New(registry,
		resolve.WithMode(cfg.mode),
		resolve.WithOverrides(overrides),
	)
	if err != nil {
		return nil, err
	}

	c.registry = registry
	c.resolver = resolver
	c.overrides = overrides

	c.logger.Debug().
		Int("schools", registry.Len()).
		Int("overrides", len(overrides)).
		Str("mode", string(cfg.mode)).
		Msg("Client initialized")
	return c, nil
}

// loadRegistry loads the school catalog configured for this client.
func (c *Client) loadRegistry() (*schools.Registry, error) {
	if c.config.catalogPath != "" {
		return schools.LoadFile(c.config.catalogPath)
	}
	return embedded.Registry()
}

// loadOverrides merges file-based and programmatic override tables, with
// programmatic entries winning.
func (c *Client) loadOverrides() (map[string]schools.SchoolID, error) {
	merged := make(map[string]schools.SchoolID)
	if c.config.overridesPath != "" {
		fromFile, err := resolve.LoadOverridesFile(c.config.overridesPath)
		if err != nil {
			return nil, err
		}
		for name, id := range fromFile {
			merged[name] = id
		}
	}
	for name, id := range c.config.overrides {
		merged[name] = id
	}
	return merged, nil
}

// Registry returns the current school registry.
func (c *Client) Registry() (*schools.Registry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.registry == nil {
		return nil, errors.NewNotFoundError("registry", "current")
	}
	return c.registry, nil
}

// Resolve matches one external record against the current registry.
func (c *Client) Resolve(rec sources.Record) resolve.Match {
	c.mu.RLock()
	resolver := c.resolver
	c.mu.RUnlock()
	return resolver.Resolve(rec)
}

// Enrich merges external records into the registry. On success the enriched
// registry replaces the current one and the provenance report is returned.
func (c *Client) Enrich(ctx context.Context, records []sources.Record) (*enrich.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = logging.WithOperation(logging.WithLogger(ctx, c.logger), "enrich")
	merged, report, err := enrich.Merge(ctx, c.registry, records, c.resolver)
	if err != nil {
		return nil, err
	}

	// The resolver holds precomputed candidates from the old registry;
	// rebuild it over the merged one.
	resolver, err := resolve.New(merged,
		resolve.WithMode(c.config.mode),
		resolve.WithOverrides(c.overrides),
	)
	if err != nil {
		return nil, err
	}

	c.registry = merged
	c.resolver = resolver
	return report, nil
}

// Classify grades every school in the registry against a profile.
func (c *Client) Classify(p classify.Profile) (*classify.ResultSet, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return classify.All(p, registry.List())
}
