// Maps domain errors to API errors.

package handlers

import (
	"errors"

	"github.com/rosterd/rosterd/internal/ingest"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server/dto"
)

// apiError translates a roster or ingest error into the structured API error
// the Wrap adapter knows how to render. Unknown errors become a 500.
func apiError(err error) error {
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		return dto.MissingField(verr.Field)
	}
	var nferr *roster.NotFoundError
	if errors.As(err, &nferr) {
		e := dto.NotFound("record")
		if nferr.Column != "" {
			e = e.WithDetail("column", nferr.Column).WithDetail("value", nferr.Value)
		} else {
			e = e.WithDetail("index", nferr.Index)
		}
		return e
	}
	var ierr *roster.IntegrityError
	if errors.As(err, &ierr) {
		return dto.IntegrityViolation(ierr.Error())
	}
	var perr *ingest.ParseError
	if errors.As(err, &perr) {
		return dto.ParseFailed(perr.Name, perr.Err)
	}
	return dto.InternalWithError("roster operation failed", err)
}
