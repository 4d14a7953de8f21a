// Package resolve matches loosely-named external records to canonical
// registry schools. Resolution tries, in order: manual overrides, exact
// normalized-name equality, then fuzzy similarity scoring with state and
// containment bonuses gated by a confidence threshold.
package resolve

import (
	"strings"

	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/normalize"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/similarity"
	"github.com/admitmap/admitmap/pkg/sources"
)

// Scoring constants.
const (
	// StrictThreshold is the minimum score accepted without human review.
	StrictThreshold = 70

	// SupervisedThreshold is the minimum score accepted when a reviewer
	// will inspect the output, provided the record's state agrees.
	SupervisedThreshold = 60

	// StateBonus is added when the record and candidate share a state.
	StateBonus = 15

	// ContainmentBonus is added when the shorter name is embedded in the
	// longer with PartialRatio above ContainmentBonusFloor.
	ContainmentBonus      = 10
	ContainmentBonusFloor = 85

	// OverrideScore is the score reported for manual-override matches.
	OverrideScore = 100
)

// Method records how a match was found.
type Method string

// Match methods.
const (
	MethodNone     Method = ""
	MethodExact    Method = "exact"
	MethodOverride Method = "manual-override"
	MethodFuzzy    Method = "fuzzy"
)

// Mode selects the acceptance threshold.
type Mode string

// Resolution modes.
const (
	// ModeStrict accepts only high-confidence matches.
	ModeStrict Mode = "strict"

	// ModeSupervised additionally accepts medium-confidence matches whose
	// state agrees, for runs where a human reviews the provenance report.
	ModeSupervised Mode = "supervised"
)

// Match is the outcome of resolving one record. The zero value means no
// match was found.
type Match struct {
	SchoolID schools.SchoolID `json:"school_id"`
	Score    int              `json:"score"`
	Method   Method           `json:"method"`
}

// Matched reports whether a school was found.
func (m Match) Matched() bool {
	return m.Method != MethodNone
}

// candidate is a registry school with its precomputed comparison key.
type candidate struct {
	id    schools.SchoolID
	key   string
	state schools.State
}

// Resolver matches external records against one registry.
type Resolver struct {
	registry   *schools.Registry
	candidates []candidate
	overrides  map[string]schools.SchoolID
	mode       Mode

	// overrideErr defers option-time override problems to New.
	overrideErr error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets the resolution mode. Default is ModeStrict.
func WithMode(mode Mode) Option {
	return func(r *Resolver) { r.mode = mode }
}

// WithOverrides installs a manual override table mapping raw external names,
// trimmed of surrounding whitespace, to school IDs. Overrides win over every
// other method, and only an exact raw-name hit triggers one: a name that
// merely resembles an override entry still goes through ordinary matching.
func WithOverrides(overrides map[string]schools.SchoolID) Option {
	return func(r *Resolver) {
		for name, id := range overrides {
			key := strings.TrimSpace(name)
			if key == "" {
				r.overrideErr = errors.NewValidationError("overrides", name,
					"override name cannot be blank")
				continue
			}
			if existing, ok := r.overrides[key]; ok && existing != id {
				r.overrideErr = errors.NewValidationError("overrides", key,
					"duplicate override entries with conflicting targets")
				continue
			}
			r.overrides[key] = id
		}
	}
}

// New builds a resolver over a registry. It fails if any override points at
// a school ID the registry does not contain.
func New(registry *schools.Registry, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		registry:  registry,
		overrides: make(map[string]schools.SchoolID),
		mode:      ModeStrict,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.overrideErr != nil {
		return nil, r.overrideErr
	}

	for name, id := range r.overrides {
		if _, ok := registry.Get(id); !ok {
			return nil, errors.NewValidationError("overrides", name,
				"override targets unknown school ID "+string(id))
		}
	}

	// Candidates are held in ID order so equal fuzzy scores always break
	// toward the lexicographically smallest ID.
	for _, school := range registry.List() {
		r.candidates = append(r.candidates, candidate{
			id:    school.ID,
			key:   normalize.Key(school.Name),
			state: school.State,
		})
	}
	return r, nil
}

// Mode returns the resolver's acceptance mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Resolve matches one external record. Matching the same record twice gives
// the same answer; Resolve never mutates resolver state.
func (r *Resolver) Resolve(rec sources.Record) Match {
	if id, ok := r.overrides[strings.TrimSpace(rec.Name)]; ok {
		return Match{SchoolID: id, Score: OverrideScore, Method: MethodOverride}
	}

	key := normalize.Key(rec.Name)
	if key == "" {
		return Match{}
	}

	if school, ok := r.registry.LookupName(rec.Name); ok {
		return Match{SchoolID: school.ID, Score: similarity.ExactScore, Method: MethodExact}
	}

	return r.fuzzy(key, rec.State)
}

// fuzzy scans every candidate and keeps the best-scoring one, then applies
// the mode's acceptance rule.
func (r *Resolver) fuzzy(key string, state schools.State) Match {
	var (
		best      int
		bestID    schools.SchoolID
		bestState bool
	)

	for _, cand := range r.candidates {
		score := similarity.Score(key, cand.key)
		sameState := state != "" && state == cand.state
		if sameState {
			score += StateBonus
		}
		if similarity.PartialRatio(key, cand.key) > ContainmentBonusFloor {
			score += ContainmentBonus
		}
		if score > 100 {
			score = 100
		}

		if score > best {
			best = score
			bestID = cand.id
			bestState = sameState
		}
	}

	if !r.accept(best, bestState) {
		logging.Debug().
			Str("key", key).
			Int("best_score", best).
			Str("mode", string(r.mode)).
			Msg("No candidate cleared the threshold")
		return Match{}
	}
	return Match{SchoolID: bestID, Score: best, Method: MethodFuzzy}
}

// accept applies the mode's threshold rule to the winning score.
func (r *Resolver) accept(score int, sameState bool) bool {
	if score >= StrictThreshold {
		return true
	}
	if r.mode == ModeSupervised {
		return score >= SupervisedThreshold && sameState
	}
	return false
}
