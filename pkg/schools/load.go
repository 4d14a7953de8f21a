package schools

import (
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/logging"
)

// catalogFile is the on-disk shape of a school catalog.
type catalogFile struct {
	Schools []*School `yaml:"schools"`
}

// Load reads a school catalog from a filesystem and builds a registry.
func Load(fsys fs.FS, path string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads a school catalog from a path on the local filesystem.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes catalog YAML and builds a registry. Attributes outside the
// recognized key set are dropped with a debug log rather than failing the
// load.
func Parse(data []byte, path string) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	for _, school := range file.Schools {
		if school == nil {
			continue
		}
		for key := range school.Attrs {
			if !KnownAttr(key) {
				logging.Debug().
					Str("school_id", string(school.ID)).
					Str("attr", string(key)).
					Str("path", path).
					Msg("Dropping unrecognized attribute")
				delete(school.Attrs, key)
			}
		}
	}

	registry, err := NewRegistry(file.Schools)
	if err != nil {
		return nil, errors.WrapResource("load", "registry", path, err)
	}

	logging.Debug().
		Int("schools", registry.Len()).
		Str("path", path).
		Msg("Loaded school catalog")
	return registry, nil
}
