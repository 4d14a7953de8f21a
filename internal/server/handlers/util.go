package handlers

import (
	"strings"

	"github.com/admitmap/admitmap/pkg/schools"
)

// stateFromRequest uppercases a client-supplied state code; validation of
// its shape happens in the profile check.
func stateFromRequest(raw string) schools.State {
	return schools.State(strings.ToUpper(strings.TrimSpace(raw)))
}
