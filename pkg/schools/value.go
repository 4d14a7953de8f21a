package schools

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// AttrKey names an optional school attribute. The set of recognized keys is
// closed; loaders drop anything else.
type AttrKey string

// Recognized attribute keys.
const (
	AttrAvgGPA           AttrKey = "avg_gpa"
	AttrAvgMCAT          AttrKey = "avg_mcat"
	AttrMinMCATNotes     AttrKey = "min_mcat_notes"
	AttrAppSystem        AttrKey = "app_system"
	AttrMDPhD            AttrKey = "mdphd"
	AttrCasperRequired   AttrKey = "casper_required"
	AttrPreviewRequired  AttrKey = "preview_required"
	AttrWebsiteURL       AttrKey = "website_url"
	AttrInStatePct       AttrKey = "in_state_pct"
	AttrOutOfStatePct    AttrKey = "out_of_state_pct"
	AttrInStateAdvantage AttrKey = "in_state_advantage"
)

// knownAttrs is the closed recognized-key set.
var knownAttrs = map[AttrKey]struct{}{
	AttrAvgGPA:           {},
	AttrAvgMCAT:          {},
	AttrMinMCATNotes:     {},
	AttrAppSystem:        {},
	AttrMDPhD:            {},
	AttrCasperRequired:   {},
	AttrPreviewRequired:  {},
	AttrWebsiteURL:       {},
	AttrInStatePct:       {},
	AttrOutOfStatePct:    {},
	AttrInStateAdvantage: {},
}

// KnownAttr reports whether k belongs to the recognized attribute set.
func KnownAttr(k AttrKey) bool {
	_, ok := knownAttrs[k]
	return ok
}

// KnownAttrs returns every recognized attribute key in sorted order.
func KnownAttrs() []AttrKey {
	keys := make([]AttrKey, 0, len(knownAttrs))
	for k := range knownAttrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NotReported marks an attribute a source looked for but the school does not
// publish. It is distinct from an absent key: a populated NotReported value
// blocks later enrichment from overwriting the curated mark.
const NotReported = "NR"

// Attrs holds a school's optional attributes as raw string values.
type Attrs map[AttrKey]string

// Get returns the raw value and whether the key is present.
func (a Attrs) Get(k AttrKey) (string, bool) {
	v, ok := a[k]
	return v, ok
}

// Populated reports whether the key holds any non-empty value, including
// the NotReported marker.
func (a Attrs) Populated(k AttrKey) bool {
	v, ok := a[k]
	return ok && strings.TrimSpace(v) != ""
}

// Reported reports whether the key holds a usable value: present, non-empty,
// and not the NotReported marker.
func (a Attrs) Reported(k AttrKey) bool {
	v, ok := a[k]
	if !ok {
		return false
	}
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NotReported)
}

// Float parses the value under k as a float. Range values like "3.7-3.9"
// yield their first bound; a trailing "+" is ignored.
func (a Attrs) Float(k AttrKey) (float64, bool) {
	if !a.Reported(k) {
		return 0, false
	}
	return ParseFloat(a[k])
}

// Int parses the value under k as an integer, with the same range and
// trailing-plus handling as Float.
func (a Attrs) Int(k AttrKey) (int, bool) {
	if !a.Reported(k) {
		return 0, false
	}
	return ParseInt(a[k])
}

// Bool parses the value under k as a yes/no flag.
func (a Attrs) Bool(k AttrKey) (bool, bool) {
	if !a.Reported(k) {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(a[k])) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}

// Copy returns a deep copy of the attribute map.
func (a Attrs) Copy() Attrs {
	if a == nil {
		return nil
	}
	dup := make(Attrs, len(a))
	maps.Copy(dup, a)
	return dup
}

// Keys returns the present attribute keys in sorted order.
func (a Attrs) Keys() []AttrKey {
	keys := make([]AttrKey, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseFloat extracts the leading numeric value from a raw attribute string.
// "NR", empty input, and non-numeric text return false.
func ParseFloat(raw string) (float64, bool) {
	v := firstValue(raw)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt extracts the leading integer value from a raw attribute string.
// Float-looking input is truncated toward zero, so "510.5" parses as 510.
func ParseInt(raw string) (int, bool) {
	f, ok := ParseFloat(raw)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// firstValue normalizes a raw value down to the leading number: ranges take
// their first bound and a trailing "+" is stripped.
func firstValue(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(v, NotReported) {
		return ""
	}
	for _, sep := range []string{"–", "—", "-"} {
		if idx := strings.Index(v, sep); idx > 0 {
			v = v[:idx]
			break
		}
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "+")
	return strings.TrimSpace(v)
}
