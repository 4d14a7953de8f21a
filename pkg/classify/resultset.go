package classify

import (
	"sort"

	"github.com/admitmap/admitmap/pkg/schools"
)

// Mix is the suggested number of applications per bucket.
type Mix struct {
	Reach      string `json:"reach"`
	Target     string `json:"target"`
	Undershoot string `json:"undershoot"`
}

// RecommendedMix returns the conventional application-list shape.
func RecommendedMix() Mix {
	return Mix{Reach: "3-5", Target: "7-10", Undershoot: "5-7"}
}

// ResultSet is a full classification run: every school graded and
// partitioned by overall category.
type ResultSet struct {
	Profile Profile `json:"profile"`

	Reach      []Verdict `json:"reach"`
	Target     []Verdict `json:"target"`
	Undershoot []Verdict `json:"undershoot"`
	Unknown    []Verdict `json:"unknown,omitempty"`

	Recommended Mix `json:"recommended"`
}

// Total returns the number of schools classified.
func (rs *ResultSet) Total() int {
	return len(rs.Reach) + len(rs.Target) + len(rs.Undershoot) + len(rs.Unknown)
}

// All validates the profile and classifies every given school. Graded
// buckets are sorted by school average GPA then MCAT, most selective first;
// the Unknown bucket is sorted by name.
func All(p Profile, list []*schools.School) (*ResultSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rs := &ResultSet{Profile: p, Recommended: RecommendedMix()}
	for _, s := range list {
		v := Classify(p, s)
		switch v.Overall {
		case CategoryReach:
			rs.Reach = append(rs.Reach, v)
		case CategoryTarget:
			rs.Target = append(rs.Target, v)
		case CategoryUndershoot:
			rs.Undershoot = append(rs.Undershoot, v)
		default:
			rs.Unknown = append(rs.Unknown, v)
		}
	}

	for _, bucket := range [][]Verdict{rs.Reach, rs.Target, rs.Undershoot} {
		sortBySelectivity(bucket)
	}
	sort.Slice(rs.Unknown, func(i, j int) bool {
		return rs.Unknown[i].SchoolName < rs.Unknown[j].SchoolName
	})
	return rs, nil
}

// sortBySelectivity orders verdicts by average GPA descending, breaking
// ties by average MCAT descending, then by ID for full determinism.
func sortBySelectivity(bucket []Verdict) {
	sort.Slice(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		if a.AvgGPA != b.AvgGPA {
			return a.AvgGPA > b.AvgGPA
		}
		if a.AvgMCAT != b.AvgMCAT {
			return a.AvgMCAT > b.AvgMCAT
		}
		return a.SchoolID < b.SchoolID
	})
}
