package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/admitmap/admitmap/internal/server/filter"
	"github.com/admitmap/admitmap/internal/server/response"
	"github.com/admitmap/admitmap/pkg/classify"
)

// classifyRequest is the POST body for /api/v1/classify.
type classifyRequest struct {
	GPA   float64 `json:"gpa"`
	MCAT  int     `json:"mcat"`
	State string  `json:"state,omitempty"`
}

// HandleClassify handles /api/v1/classify. GET carries the applicant profile
// on the query string; POST carries it in the body. School filters ride on
// the query string either way, the same way they do for the schools listing.
func (h *Handlers) HandleClassify(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileFromRequest(w, r)
	if !ok {
		return
	}

	reg, err := h.source.Registry()
	if err != nil {
		response.InternalError(w, err)
		return
	}

	f := filter.ParseSchoolFilter(r)
	if r.Method == http.MethodGet {
		// On GET the state parameter names the applicant's residence,
		// not a school filter.
		f.State = ""
	}
	list := f.Apply(reg.List())

	result, err := classify.All(profile, list)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.logger.Debug().
		Float64("gpa", profile.GPA).
		Int("mcat", profile.MCAT).
		Int("schools", result.Total()).
		Msg("Classified applicant profile")
	response.OK(w, result)
}

// profileFromRequest extracts the applicant profile, writing a 400 response
// and returning false when the request does not carry a usable one.
func (h *Handlers) profileFromRequest(w http.ResponseWriter, r *http.Request) (classify.Profile, bool) {
	if r.Method == http.MethodPost {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", err.Error())
			return classify.Profile{}, false
		}
		return classify.Profile{
			GPA:   req.GPA,
			MCAT:  req.MCAT,
			State: stateFromRequest(req.State),
		}, true
	}

	q := r.URL.Query()
	gpa, err := strconv.ParseFloat(q.Get("gpa"), 64)
	if err != nil {
		response.BadRequest(w, "Invalid gpa parameter", q.Get("gpa"))
		return classify.Profile{}, false
	}
	mcat, err := strconv.Atoi(q.Get("mcat"))
	if err != nil {
		response.BadRequest(w, "Invalid mcat parameter", q.Get("mcat"))
		return classify.Profile{}, false
	}
	return classify.Profile{
		GPA:   gpa,
		MCAT:  mcat,
		State: stateFromRequest(q.Get("state")),
	}, true
}
