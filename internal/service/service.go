// Package service contains the business rules of the API.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     parses requests, writes responses
//	Service (business layer) validates, enforces rules, orchestrates
//	Repository (data layer)  reads/writes the database
//
// Services accept plain Go values and return domain errors from apperror.
// They never see an *http.Request and never pick a status code; the handler
// translates apperror sentinels into HTTP.
//
// DEPENDENCY INJECTION:
// Every service takes repository interfaces, not *sqlite.DB. main.go passes
// the one sqlite.DB for all of them; tests pass in-memory fakes.
package service

import (
	"fmt"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
)

// checkID rejects ids that can never exist. Auto-increment ids start at 1,
// so zero and negatives are NotFound rather than a database round trip.
func checkID(resource string, id int64) error {
	if id <= 0 {
		return apperror.NotFound(resource, fmt.Sprint(id))
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
