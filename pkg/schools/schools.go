package schools

import (
	"maps"
	"sort"
	"sync"

	"github.com/admitmap/admitmap/pkg/errors"
)

// Schools is a concurrent safe map of schools keyed by ID.
type Schools struct {
	mu      sync.RWMutex
	schools map[SchoolID]*School
}

// SchoolsOption defines a function that configures a Schools instance.
type SchoolsOption func(*Schools)

// WithCapacity sets the initial capacity of the schools map.
func WithCapacity(capacity int) SchoolsOption {
	return func(s *Schools) {
		s.schools = make(map[SchoolID]*School, capacity)
	}
}

// WithMap initializes the collection from an existing map.
func WithMap(schools map[SchoolID]*School) SchoolsOption {
	return func(s *Schools) {
		if schools != nil {
			s.schools = make(map[SchoolID]*School, len(schools))
			maps.Copy(s.schools, schools)
		}
	}
}

// NewSchools creates a new Schools map with optional configuration.
func NewSchools(opts ...SchoolsOption) *Schools {
	s := &Schools{
		schools: make(map[SchoolID]*School),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a school by id and whether it exists.
func (s *Schools) Get(id SchoolID) (*School, bool) {
	s.mu.RLock()
	school, ok := s.schools[id]
	s.mu.RUnlock()
	return school, ok
}

// Set stores a school under its ID, replacing any existing entry.
func (s *Schools) Set(school *School) error {
	if school == nil {
		return errors.NewValidationError("school", nil, "school cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools[school.ID] = school
	return nil
}

// Add adds a school, returning an error if its ID is already taken.
func (s *Schools) Add(school *School) error {
	if school == nil {
		return errors.NewValidationError("school", nil, "school cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schools[school.ID]; exists {
		return errors.NewDuplicateError("id", string(school.ID), string(school.ID))
	}

	s.schools[school.ID] = school
	return nil
}

// AddBatch adds multiple schools, stopping at the first failure.
func (s *Schools) AddBatch(schools []*School) error {
	for _, school := range schools {
		if err := s.Add(school); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a school by id. Returns an error if it doesn't exist.
func (s *Schools) Delete(id SchoolID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schools[id]; !exists {
		return errors.NewNotFoundError("school", string(id))
	}

	delete(s.schools, id)
	return nil
}

// Exists checks if a school exists without returning it.
func (s *Schools) Exists(id SchoolID) bool {
	s.mu.RLock()
	_, exists := s.schools[id]
	s.mu.RUnlock()
	return exists
}

// Len returns the number of schools.
func (s *Schools) Len() int {
	s.mu.RLock()
	length := len(s.schools)
	s.mu.RUnlock()
	return length
}

// List returns all schools sorted by ID. Resolution and classification
// iterate this slice, so the fixed order keeps their output deterministic.
func (s *Schools) List() []*School {
	s.mu.RLock()
	schools := make([]*School, 0, len(s.schools))
	for _, school := range s.schools {
		schools = append(schools, school)
	}
	s.mu.RUnlock()

	sort.Slice(schools, func(i, j int) bool {
		return schools[i].ID < schools[j].ID
	})
	return schools
}

// Map returns a copy of the underlying map.
func (s *Schools) Map() map[SchoolID]*School {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[SchoolID]*School, len(s.schools))
	maps.Copy(result, s.schools)
	return result
}

// ForEach applies fn to each school in ID order. If fn returns false,
// iteration stops early.
func (s *Schools) ForEach(fn func(id SchoolID, school *School) bool) {
	for _, school := range s.List() {
		if !fn(school.ID, school) {
			return
		}
	}
}

// Copy returns a deep copy of the collection.
func (s *Schools) Copy() *Schools {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dup := make(map[SchoolID]*School, len(s.schools))
	for id, school := range s.schools {
		dup[id] = school.Copy()
	}
	return &Schools{schools: dup}
}
