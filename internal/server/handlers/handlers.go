// Package handlers provides the HTTP request handlers for the admitmap API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/admitmap/admitmap/internal/server/cache"
	"github.com/admitmap/admitmap/pkg/schools"
)

// RegistrySource supplies the current school registry. Enrichment runs swap
// the registry behind this interface, so handlers always fetch it fresh.
type RegistrySource interface {
	Registry() (*schools.Registry, error)
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	source RegistrySource
	cache  *cache.Cache
	logger *zerolog.Logger
	start  time.Time
}

// New creates a new Handlers instance.
func New(source RegistrySource, cache *cache.Cache, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		source: source,
		cache:  cache,
		logger: logger,
		start:  time.Now(),
	}
}
