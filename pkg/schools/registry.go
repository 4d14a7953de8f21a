package schools

import (
	"slices"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/normalize"
)

// Registry is the validated canonical set of schools. Construction fails
// outright on duplicate IDs or on two schools whose names collapse to the
// same normalized key, so a loaded registry always has unambiguous identity.
//
// A Registry is effectively immutable once built; enrichment produces a new
// Registry rather than mutating one in place.
type Registry struct {
	schools *Schools

	// byKey maps normalized name keys to school IDs for exact-match lookup.
	byKey map[string]SchoolID
}

// NewRegistry builds a registry from a school list, validating every record
// and the identity invariants.
func NewRegistry(list []*School) (*Registry, error) {
	r := &Registry{
		schools: NewSchools(WithCapacity(len(list))),
		byKey:   make(map[string]SchoolID, len(list)),
	}

	for _, school := range list {
		if school == nil {
			return nil, errors.NewValidationError("school", nil, "school cannot be nil")
		}
		if err := school.Validate(); err != nil {
			return nil, err
		}

		key := normalize.Key(school.Name)
		if key == "" {
			return nil, errors.NewValidationError("name", school.Name, "name normalizes to an empty key")
		}
		if prev, exists := r.byKey[key]; exists {
			return nil, errors.NewDuplicateError("name", key, string(prev), string(school.ID))
		}
		if err := r.schools.Add(school.Copy()); err != nil {
			return nil, err
		}
		r.byKey[key] = school.ID
	}

	return r, nil
}

// Get returns a school by ID.
func (r *Registry) Get(id SchoolID) (*School, bool) {
	return r.schools.Get(id)
}

// LookupName finds a school whose name normalizes to the same key as name.
func (r *Registry) LookupName(name string) (*School, bool) {
	id, ok := r.byKey[normalize.Key(name)]
	if !ok {
		return nil, false
	}
	return r.schools.Get(id)
}

// Key returns the normalized name key registered for a school ID.
func (r *Registry) Key(id SchoolID) (string, bool) {
	for key, sid := range r.byKey {
		if sid == id {
			return key, true
		}
	}
	return "", false
}

// List returns all schools sorted by ID.
func (r *Registry) List() []*School {
	return r.schools.List()
}

// ForEach applies fn to each school in ID order, stopping when fn returns
// false.
func (r *Registry) ForEach(fn func(id SchoolID, school *School) bool) {
	r.schools.ForEach(fn)
}

// Len returns the number of schools in the registry.
func (r *Registry) Len() int {
	return r.schools.Len()
}

// States returns the distinct states represented, sorted.
func (r *Registry) States() []State {
	seen := make(map[State]struct{})
	for _, school := range r.schools.List() {
		seen[school.State] = struct{}{}
	}
	states := make([]State, 0, len(seen))
	for st := range seen {
		states = append(states, st)
	}
	slices.Sort(states)
	return states
}

// Snapshot returns a deep copy of the registry. Callers may mutate the
// snapshot's schools without affecting the original.
func (r *Registry) Snapshot() *Registry {
	dup := &Registry{
		schools: r.schools.Copy(),
		byKey:   make(map[string]SchoolID, len(r.byKey)),
	}
	for key, id := range r.byKey {
		dup.byKey[key] = id
	}
	return dup
}
