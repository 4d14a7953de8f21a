// Package embedded ships a seed school catalog compiled into the binary, so
// admitmap works out of the box without any external data files.
package embedded

import (
	"embed"

	"github.com/admitmap/admitmap/pkg/schools"
)

//go:embed catalog/schools.yaml
var catalogFS embed.FS

// CatalogPath is the location of the seed catalog inside the embedded
// filesystem.
const CatalogPath = "catalog/schools.yaml"

// FS returns the embedded catalog filesystem.
func FS() embed.FS {
	return catalogFS
}

// Registry loads the embedded seed catalog into a registry.
func Registry() (*schools.Registry, error) {
	return schools.Load(catalogFS, CatalogPath)
}
