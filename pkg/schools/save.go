package schools

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/admitmap/admitmap/pkg/errors"
)

// catalogFilePermissions is the mode used when writing catalog files.
const catalogFilePermissions = 0o644

// Marshal renders a registry as catalog YAML, schools in ID order.
func Marshal(r *Registry) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(catalogFile{Schools: r.List()},
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", "catalog", err)
	}
	return data, nil
}

// Save writes a registry to a catalog file. Loading the file back yields an
// equal registry.
func Save(r *Registry, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, catalogFilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
