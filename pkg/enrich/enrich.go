// Package enrich merges external feed records into a school registry. The
// registry is never mutated in place: Merge resolves each record, copies the
// registry, fills only attributes the school does not already hold, and
// returns the new registry with a provenance report of everything it did.
package enrich

import (
	"context"

	"github.com/admitmap/admitmap/pkg/logging"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/sources"
)

// SchoolReport records what enrichment did to one school.
type SchoolReport struct {
	SchoolID schools.SchoolID  `json:"school_id"`
	Method   resolve.Method    `json:"method"`
	Score    int               `json:"score"`
	Added    []schools.AttrKey `json:"added,omitempty"`
	Skipped  []schools.AttrKey `json:"skipped,omitempty"`
}

// UnmatchedRecord is a feed record no school could be resolved for.
type UnmatchedRecord struct {
	Source string        `json:"source"`
	Name   string        `json:"name"`
	State  schools.State `json:"state,omitempty"`
}

// Report is the provenance record of one merge run.
type Report struct {
	Records   int                                `json:"records"`
	Matched   int                                `json:"matched"`
	Schools   map[schools.SchoolID]*SchoolReport `json:"schools,omitempty"`
	Unmatched []UnmatchedRecord                  `json:"unmatched,omitempty"`
}

// Added returns the total number of attributes written across all schools.
func (r *Report) Added() int {
	n := 0
	for _, sr := range r.Schools {
		n += len(sr.Added)
	}
	return n
}

// Merge resolves every record against the registry and writes its attributes
// into a snapshot. Only absent attributes are filled; anything the school
// already populates, including explicit not-reported marks, is left alone.
// Merging the same feed twice therefore leaves the second result identical
// to the first. Log output goes to the context logger, annotated per record
// with its source and, once resolved, its school ID.
func Merge(ctx context.Context, registry *schools.Registry, records []sources.Record, resolver *resolve.Resolver) (*schools.Registry, *Report, error) {
	snapshot := registry.Snapshot()
	report := &Report{
		Records: len(records),
		Schools: make(map[schools.SchoolID]*SchoolReport),
	}

	for _, rec := range records {
		recCtx := logging.WithSource(ctx, rec.Source)

		match := resolver.Resolve(rec)
		if !match.Matched() {
			report.Unmatched = append(report.Unmatched, UnmatchedRecord{
				Source: rec.Source,
				Name:   rec.Name,
				State:  rec.State,
			})
			logging.Ctx(recCtx).Debug().
				Str("name", rec.Name).
				Msg("Record did not resolve")
			continue
		}
		report.Matched++
		recCtx = logging.WithSchool(recCtx, string(match.SchoolID))

		school, ok := snapshot.Get(match.SchoolID)
		if !ok {
			// Resolver and registry disagree; resolver was built over a
			// different registry. Treat as unmatched rather than fail the run.
			report.Matched--
			report.Unmatched = append(report.Unmatched, UnmatchedRecord{
				Source: rec.Source,
				Name:   rec.Name,
				State:  rec.State,
			})
			continue
		}

		sr := report.Schools[match.SchoolID]
		if sr == nil {
			sr = &SchoolReport{SchoolID: match.SchoolID, Method: match.Method, Score: match.Score}
			report.Schools[match.SchoolID] = sr
		}

		added, skipped := 0, 0
		for _, key := range rec.Attrs.Keys() {
			if school.Attrs.Populated(key) {
				sr.Skipped = append(sr.Skipped, key)
				skipped++
				continue
			}
			if school.Attrs == nil {
				school.Attrs = schools.Attrs{}
			}
			school.Attrs[key] = rec.Attrs[key]
			sr.Added = append(sr.Added, key)
			added++
		}

		logging.Ctx(recCtx).Debug().
			Str("name", rec.Name).
			Int("added", added).
			Int("skipped", skipped).
			Msg("Record merged")
	}

	logging.Ctx(ctx).Info().
		Int("records", report.Records).
		Int("matched", report.Matched).
		Int("added", report.Added()).
		Int("unmatched", len(report.Unmatched)).
		Msg("Merge complete")
	return snapshot, report, nil
}
