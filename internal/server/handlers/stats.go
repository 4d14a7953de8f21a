package handlers

import (
	"net/http"

	"github.com/admitmap/admitmap/internal/server/response"
	"github.com/admitmap/admitmap/pkg/schools"
)

// rangeStats summarizes one numeric attribute over reporting schools.
type rangeStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// HandleStats handles GET /api/v1/stats with registry-wide counts and
// min/max/average of the published figures, computed over reporting
// schools only.
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	if cached, found := h.cache.Get("stats"); found {
		response.OK(w, cached)
		return
	}

	reg, err := h.source.Registry()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	stats := struct {
		Total             int         `json:"total"`
		MD                int         `json:"md"`
		DO                int         `json:"do"`
		Public            int         `json:"public"`
		Private           int         `json:"private"`
		States            int         `json:"states"`
		ReportingAverages int         `json:"reporting_averages"`
		GPA               *rangeStats `json:"gpa,omitempty"`
		MCAT              *rangeStats `json:"mcat,omitempty"`
	}{
		Total:  reg.Len(),
		States: len(reg.States()),
	}

	var gpaSum, mcatSum float64
	var gpaN, mcatN int

	for _, s := range reg.List() {
		switch s.Degree {
		case schools.DegreeMD:
			stats.MD++
		case schools.DegreeDO:
			stats.DO++
		}
		if s.Public() {
			stats.Public++
		} else {
			stats.Private++
		}

		gpa, hasGPA := s.AvgGPA()
		mcat, hasMCAT := s.AvgMCAT()
		if hasGPA && hasMCAT {
			stats.ReportingAverages++
		}
		if hasGPA {
			stats.GPA = widen(stats.GPA, gpa)
			gpaSum += gpa
			gpaN++
		}
		if hasMCAT {
			stats.MCAT = widen(stats.MCAT, float64(mcat))
			mcatSum += float64(mcat)
			mcatN++
		}
	}

	if gpaN > 0 {
		stats.GPA.Avg = gpaSum / float64(gpaN)
	}
	if mcatN > 0 {
		stats.MCAT.Avg = mcatSum / float64(mcatN)
	}

	h.cache.Set("stats", stats)
	response.OK(w, stats)
}

// widen folds one value into a range summary, allocating it on first use.
func widen(r *rangeStats, v float64) *rangeStats {
	if r == nil {
		return &rangeStats{Min: v, Max: v}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}
