// Package sources models external data feeds: records scraped or exported
// from outside systems that name a school loosely and carry attributes to
// merge into the registry.
package sources

import (
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/schools"
)

// Record is one external observation of a school. The Name is whatever the
// source printed, not a registry identity, and must be resolved before its
// attributes can be used.
type Record struct {
	Source string         `json:"source" yaml:"source"`
	Name   string         `json:"name" yaml:"name"`
	State  schools.State  `json:"state,omitempty" yaml:"state,omitempty"`
	Attrs  schools.Attrs  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Validate checks that the record carries enough to be resolvable.
func (r *Record) Validate() error {
	if r.Name == "" {
		return errors.NewValidationError("name", r.Name, "record name cannot be empty")
	}
	if r.State != "" && len(r.State) != 2 {
		return errors.NewValidationError("state", r.State, "state must be a two-letter code")
	}
	return nil
}

// feedFile is the on-disk shape of an external feed.
type feedFile struct {
	Source  string   `yaml:"source"`
	Records []Record `yaml:"records"`
}

// Load reads an external feed from a filesystem.
func Load(fsys fs.FS, path string) ([]Record, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads an external feed from the local filesystem.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes feed YAML. Each record inherits the feed-level source name
// unless it sets its own; unrecognized attribute keys are dropped.
func Parse(data []byte, path string) ([]Record, error) {
	var file feedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	records := make([]Record, 0, len(file.Records))
	for i := range file.Records {
		rec := file.Records[i]
		if rec.Source == "" {
			rec.Source = file.Source
		}
		if err := rec.Validate(); err != nil {
			return nil, errors.WrapResource("load", "feed", path, err)
		}
		for key := range rec.Attrs {
			if !schools.KnownAttr(key) {
				logging.Debug().
					Str("source", rec.Source).
					Str("name", rec.Name).
					Str("attr", string(key)).
					Msg("Dropping unrecognized attribute")
				delete(rec.Attrs, key)
			}
		}
		records = append(records, rec)
	}

	logging.Debug().
		Str("source", file.Source).
		Int("records", len(records)).
		Str("path", path).
		Msg("Loaded external feed")
	return records, nil
}
