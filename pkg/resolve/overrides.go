package resolve

import (
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/schools"
)

// overridesFile is the on-disk shape of a manual override table: raw
// external names mapped to registry school IDs.
type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// LoadOverrides reads an override table from a filesystem.
func LoadOverrides(fsys fs.FS, path string) (map[string]schools.SchoolID, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseOverrides(data, path)
}

// LoadOverridesFile reads an override table from the local filesystem.
func LoadOverridesFile(path string) (map[string]schools.SchoolID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseOverrides(data, path)
}

// ParseOverrides decodes override YAML. Names are trimmed of surrounding
// whitespace; two entries that trim to the same name are rejected rather
// than letting one silently shadow the other.
func ParseOverrides(data []byte, path string) (map[string]schools.SchoolID, error) {
	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	overrides := make(map[string]schools.SchoolID, len(file.Overrides))
	for name, id := range file.Overrides {
		key := strings.TrimSpace(name)
		if key == "" || id == "" {
			return nil, errors.NewValidationError("overrides", name,
				"override entries need both a name and a school ID")
		}
		if _, ok := overrides[key]; ok {
			return nil, errors.NewValidationError("overrides", key,
				"duplicate override entry")
		}
		overrides[key] = schools.SchoolID(id)
	}
	return overrides, nil
}
