package handlers

import (
	"net/http"

	"github.com/admitmap/admitmap/internal/server/filter"
	"github.com/admitmap/admitmap/internal/server/response"
	"github.com/admitmap/admitmap/pkg/schools"
)

// HandleListSchools handles GET /api/v1/schools with optional filters:
// state, degree, ownership, name_contains, app_system, mdphd, casper,
// min_gpa, max_gpa, min_mcat, max_mcat, limit, offset.
func (h *Handlers) HandleListSchools(w http.ResponseWriter, r *http.Request) {
	cacheKey := "schools?" + r.URL.RawQuery
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	reg, err := h.source.Registry()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	f := filter.ParseSchoolFilter(r)
	matched := f.Apply(reg.List())

	result := map[string]any{
		"schools": matched,
		"count":   len(matched),
		"total":   reg.Len(),
	}

	h.cache.Set(cacheKey, result)
	response.OK(w, result)
}

// HandleGetSchool handles GET /api/v1/schools/{id}.
func (h *Handlers) HandleGetSchool(w http.ResponseWriter, _ *http.Request, id string) {
	reg, err := h.source.Registry()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	school, ok := reg.Get(schools.SchoolID(id))
	if !ok {
		response.NotFound(w, "School not found", "No school with ID "+id)
		return
	}
	response.OK(w, school)
}
