package handlers

import (
	"net/http"

	"github.com/admitmap/admitmap/internal/server/response"
	"github.com/admitmap/admitmap/pkg/schools"
)

// HandleStates handles GET /api/v1/states, listing every state with at
// least one school and how many schools it holds.
func (h *Handlers) HandleStates(w http.ResponseWriter, _ *http.Request) {
	if cached, found := h.cache.Get("states"); found {
		response.OK(w, cached)
		return
	}

	reg, err := h.source.Registry()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	type stateCount struct {
		total int
		md    int
		do    int
	}
	counts := make(map[string]*stateCount)
	for _, s := range reg.List() {
		c := counts[string(s.State)]
		if c == nil {
			c = &stateCount{}
			counts[string(s.State)] = c
		}
		c.total++
		switch s.Degree {
		case schools.DegreeMD:
			c.md++
		case schools.DegreeDO:
			c.do++
		}
	}

	states := reg.States()
	list := make([]map[string]any, 0, len(states))
	for _, st := range states {
		c := counts[string(st)]
		list = append(list, map[string]any{
			"state":   st,
			"schools": c.total,
			"md":      c.md,
			"do":      c.do,
		})
	}

	result := map[string]any{
		"states": list,
		"count":  len(list),
	}

	h.cache.Set("states", result)
	response.OK(w, result)
}
