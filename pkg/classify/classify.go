// Package classify grades how an applicant's GPA and MCAT stack up against
// each school's matriculant averages and buckets every school as a Reach,
// Target, or Undershoot. Schools without published averages land in an
// Unknown bucket instead of being silently skipped.
package classify

import (
	"fmt"
	"regexp"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/schools"
)

// Grading thresholds. A dimension is an Undershoot when the applicant sits
// at least the undershoot diff above the school average, a Reach when at
// least that far below, and a Target in between. The tie band marks the
// range treated as a dead heat.
const (
	GPAUndershootDiff = 0.2
	GPATieBand        = 0.1

	MCATUndershootDiff = 3
	MCATTieBand        = 2
)

// MCAT score bounds for profile validation.
const (
	MCATMin = 472
	MCATMax = 528
)

// GPAMax is the highest GPA a profile may carry.
const GPAMax = 4.0

// Category is a fit bucket.
type Category string

// Fit categories.
const (
	CategoryReach      Category = "Reach"
	CategoryTarget     Category = "Target"
	CategoryUndershoot Category = "Undershoot"
	CategoryUnknown    Category = "Unknown"
)

// Profile is an applicant's academic snapshot.
type Profile struct {
	GPA   float64       `json:"gpa" yaml:"gpa"`
	MCAT  int           `json:"mcat" yaml:"mcat"`
	State schools.State `json:"state,omitempty" yaml:"state,omitempty"`
}

// Validate checks the profile's numbers against plausible score ranges.
func (p Profile) Validate() error {
	if p.GPA <= 0 || p.GPA > GPAMax {
		return errors.NewValidationError("gpa", p.GPA,
			fmt.Sprintf("GPA must be in (0, %.1f]", GPAMax))
	}
	if p.MCAT < MCATMin || p.MCAT > MCATMax {
		return errors.NewValidationError("mcat", p.MCAT,
			fmt.Sprintf("MCAT must be in [%d, %d]", MCATMin, MCATMax))
	}
	if p.State != "" && len(p.State) != 2 {
		return errors.NewValidationError("state", p.State, "state must be a two-letter code")
	}
	return nil
}

// Verdict is the classification of one school for one profile.
type Verdict struct {
	SchoolID   schools.SchoolID `json:"school_id"`
	SchoolName string           `json:"school_name"`
	State      schools.State    `json:"state"`
	Degree     schools.Degree   `json:"degree"`

	Overall Category `json:"overall"`
	GPA     Category `json:"gpa"`
	MCAT    Category `json:"mcat"`

	// Diffs are applicant minus school average; positive means the
	// applicant is above the average.
	GPADiff  float64 `json:"gpa_diff,omitempty"`
	MCATDiff int     `json:"mcat_diff,omitempty"`

	AvgGPA  float64 `json:"avg_gpa,omitempty"`
	AvgMCAT int     `json:"avg_mcat,omitempty"`

	// BelowMinimum is set when the school publishes an MCAT floor the
	// applicant does not clear. It forces the overall category to Reach.
	BelowMinimum bool `json:"below_minimum,omitempty"`

	// InStateAdvantage is set for public schools in the applicant's state.
	InStateAdvantage bool `json:"in_state_advantage,omitempty"`

	Reason string `json:"reason,omitempty"`
}

// firstInteger finds the leading integer in free-form minimum-score notes,
// e.g. "498 minimum to be considered" or "Accepts 495+ for residents".
var firstInteger = regexp.MustCompile(`\d+`)

// MinimumMCAT extracts a hard MCAT floor from a school's notes. Notes with
// no digits, like "unknown" or "NR", yield no floor.
func MinimumMCAT(notes string) (int, bool) {
	digits := firstInteger.FindString(notes)
	if digits == "" {
		return 0, false
	}
	var floor int
	if _, err := fmt.Sscanf(digits, "%d", &floor); err != nil {
		return 0, false
	}
	return floor, true
}

// Classify grades one school against one profile. The profile is assumed
// valid; call Profile.Validate first when the input is untrusted.
func Classify(p Profile, s *schools.School) Verdict {
	v := Verdict{
		SchoolID:   s.ID,
		SchoolName: s.Name,
		State:      s.State,
		Degree:     s.Degree,
	}

	avgGPA, hasGPA := s.AvgGPA()
	avgMCAT, hasMCAT := s.AvgMCAT()
	if !hasGPA || !hasMCAT {
		v.Overall = CategoryUnknown
		v.GPA = CategoryUnknown
		v.MCAT = CategoryUnknown
		v.Reason = "school does not publish matriculant averages"
		return v
	}

	v.InStateAdvantage = p.State != "" && p.State == s.State && s.Public()

	v.AvgGPA = avgGPA
	v.AvgMCAT = avgMCAT
	v.GPADiff = p.GPA - avgGPA
	v.MCATDiff = p.MCAT - avgMCAT
	v.GPA = gradeGPA(v.GPADiff)
	v.MCAT = gradeMCAT(v.MCATDiff)
	v.Overall = combine(v.GPA, v.MCAT)

	if notes, ok := s.Attrs.Get(schools.AttrMinMCATNotes); ok {
		if floor, ok := MinimumMCAT(notes); ok && p.MCAT < floor {
			v.Overall = CategoryReach
			v.BelowMinimum = true
			v.Reason = fmt.Sprintf("MCAT %d is below the school's stated floor of %d", p.MCAT, floor)
		}
	}
	return v
}

// gradeGPA buckets a GPA diff. The band between the tie band and the
// undershoot diff counts as Target on both sides.
func gradeGPA(diff float64) Category {
	switch {
	case diff >= GPAUndershootDiff:
		return CategoryUndershoot
	case diff <= -GPAUndershootDiff:
		return CategoryReach
	default:
		return CategoryTarget
	}
}

// gradeMCAT buckets an MCAT diff.
func gradeMCAT(diff int) Category {
	switch {
	case diff >= MCATUndershootDiff:
		return CategoryUndershoot
	case diff <= -MCATUndershootDiff:
		return CategoryReach
	default:
		return CategoryTarget
	}
}

// combine folds the two dimension grades into an overall category: equal
// grades pass through, Target absorbs into the other dimension's grade, and
// Reach against Undershoot balances out to Target.
func combine(gpa, mcat Category) Category {
	switch {
	case gpa == mcat:
		return gpa
	case gpa == CategoryTarget:
		return mcat
	case mcat == CategoryTarget:
		return gpa
	default:
		return CategoryTarget
	}
}
