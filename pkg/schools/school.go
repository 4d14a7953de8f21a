// Package schools defines the core institution model for admitmap: the
// School record, its closed set of optional attributes, the concurrent
// Schools collection, and the Registry that guards identity integrity.
package schools

import (
	"github.com/admitmap/admitmap/pkg/errors"
)

// SchoolID uniquely identifies a school in the registry.
type SchoolID string

// String returns the string representation of the school ID.
func (id SchoolID) String() string {
	return string(id)
}

// State is a two-letter US state or territory code, e.g. "CA".
type State string

// Degree is the degree program a school grants.
type Degree string

// Degree values.
const (
	DegreeMD Degree = "MD"
	DegreeDO Degree = "DO"
)

// Ownership describes a school's funding model.
type Ownership string

// Ownership values.
const (
	OwnershipPublic  Ownership = "public"
	OwnershipPrivate Ownership = "private"
)

// School is a single medical school. Identity fields (ID, Name, State,
// Degree, Ownership) are always present; everything else lives in Attrs
// and may be absent or explicitly not reported.
type School struct {
	ID        SchoolID  `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	State     State     `json:"state" yaml:"state"`
	Degree    Degree    `json:"degree" yaml:"degree"`
	Ownership Ownership `json:"ownership" yaml:"ownership"`
	Attrs     Attrs     `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Validate checks that the identity fields hold usable values.
func (s *School) Validate() error {
	if s.ID == "" {
		return errors.NewValidationError("id", s.ID, "school ID cannot be empty")
	}
	if s.Name == "" {
		return errors.NewValidationError("name", s.Name, "school name cannot be empty")
	}
	if len(s.State) != 2 {
		return errors.NewValidationError("state", s.State, "state must be a two-letter code")
	}
	switch s.Degree {
	case DegreeMD, DegreeDO:
	default:
		return errors.NewValidationError("degree", s.Degree, "degree must be MD or DO")
	}
	switch s.Ownership {
	case OwnershipPublic, OwnershipPrivate:
	default:
		return errors.NewValidationError("ownership", s.Ownership, "ownership must be public or private")
	}
	return nil
}

// Copy returns a deep copy of the school.
func (s *School) Copy() *School {
	if s == nil {
		return nil
	}
	dup := *s
	dup.Attrs = s.Attrs.Copy()
	return &dup
}

// Public reports whether the school is publicly funded.
func (s *School) Public() bool {
	return s.Ownership == OwnershipPublic
}

// AvgGPA returns the reported matriculant GPA average, if any.
func (s *School) AvgGPA() (float64, bool) {
	return s.Attrs.Float(AttrAvgGPA)
}

// AvgMCAT returns the reported matriculant MCAT average, if any.
func (s *School) AvgMCAT() (int, bool) {
	return s.Attrs.Int(AttrAvgMCAT)
}
