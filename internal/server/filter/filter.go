// Package filter parses school query parameters and applies them to school
// lists for the API endpoints.
package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/admitmap/admitmap/pkg/normalize"
	"github.com/admitmap/admitmap/pkg/schools"
)

// SchoolFilter holds every criterion the schools endpoints accept.
type SchoolFilter struct {
	// Identity filters
	State        schools.State
	Degree       schools.Degree
	Ownership    schools.Ownership
	NameContains string

	// Attribute filters
	AppSystem string
	MDPhD     *bool
	Casper    *bool

	// Numeric range filters over published averages. Schools that do not
	// report a figure are excluded by the corresponding range filter.
	MinGPA  float64
	MaxGPA  float64
	MinMCAT int
	MaxMCAT int

	// Pagination
	Limit  int
	Offset int
}

// ParseSchoolFilter extracts filter parameters from an HTTP request.
func ParseSchoolFilter(r *http.Request) SchoolFilter {
	q := r.URL.Query()

	f := SchoolFilter{
		State:        schools.State(strings.ToUpper(q.Get("state"))),
		Degree:       schools.Degree(strings.ToUpper(q.Get("degree"))),
		Ownership:    schools.Ownership(strings.ToLower(q.Get("ownership"))),
		NameContains: q.Get("name_contains"),
		AppSystem:    q.Get("app_system"),
		Limit:        parseIntOrDefault(q.Get("limit"), 100),
		Offset:       parseIntOrDefault(q.Get("offset"), 0),
	}

	if v := q.Get("mdphd"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.MDPhD = &b
		}
	}
	if v := q.Get("casper"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Casper = &b
		}
	}

	f.MinGPA = parseFloatOrDefault(q.Get("min_gpa"), 0)
	f.MaxGPA = parseFloatOrDefault(q.Get("max_gpa"), 0)
	f.MinMCAT = parseIntOrDefault(q.Get("min_mcat"), 0)
	f.MaxMCAT = parseIntOrDefault(q.Get("max_mcat"), 0)

	return f
}

// Apply returns the schools that pass every set criterion, preserving input
// order, then applies offset and limit.
func (f SchoolFilter) Apply(list []*schools.School) []*schools.School {
	matched := make([]*schools.School, 0, len(list))
	for _, s := range list {
		if f.matches(s) {
			matched = append(matched, s)
		}
	}

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return []*schools.School{}
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

// matches checks one school against every set criterion.
func (f SchoolFilter) matches(s *schools.School) bool {
	if f.State != "" && s.State != f.State {
		return false
	}
	if f.Degree != "" && s.Degree != f.Degree {
		return false
	}
	if f.Ownership != "" && s.Ownership != f.Ownership {
		return false
	}
	if f.NameContains != "" &&
		!strings.Contains(normalize.Key(s.Name), normalize.Key(f.NameContains)) {
		return false
	}
	if f.AppSystem != "" {
		system, ok := s.Attrs.Get(schools.AttrAppSystem)
		if !ok || !strings.EqualFold(system, f.AppSystem) {
			return false
		}
	}
	if f.MDPhD != nil {
		has, ok := s.Attrs.Bool(schools.AttrMDPhD)
		if !ok || has != *f.MDPhD {
			return false
		}
	}
	if f.Casper != nil {
		has, ok := s.Attrs.Bool(schools.AttrCasperRequired)
		if !ok || has != *f.Casper {
			return false
		}
	}

	if f.MinGPA > 0 || f.MaxGPA > 0 {
		gpa, ok := s.AvgGPA()
		if !ok {
			return false
		}
		if f.MinGPA > 0 && gpa < f.MinGPA {
			return false
		}
		if f.MaxGPA > 0 && gpa > f.MaxGPA {
			return false
		}
	}
	if f.MinMCAT > 0 || f.MaxMCAT > 0 {
		mcat, ok := s.AvgMCAT()
		if !ok {
			return false
		}
		if f.MinMCAT > 0 && mcat < f.MinMCAT {
			return false
		}
		if f.MaxMCAT > 0 && mcat > f.MaxMCAT {
			return false
		}
	}
	return true
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return def
}

func parseFloatOrDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}
