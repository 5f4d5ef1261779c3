package reject

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	genericUnexpectedError string = "error.generic.unexpected"
	invalidRequest         string = "error.generic.invalid-request-payload"
	cannotParseParams      string = "error.generic.cannot-parse-params"
	cannotParseBody        string = "error.generic.cannot-parse-payload"
	genericNotFound        string = "error.generic.not-found"
	genericConflict        string = "error.generic.conflict"
	upstreamFailure        string = "error.upstream.failure"
)

func RequestValidationProblem(message string) Problem {
	return NewProblem().
		WithStatus(http.StatusBadRequest).
		WithError(message).
		WithCode(invalidRequest).
		Build()
}

func RequestParamsProblem() Problem {
	return NewProblem().
		WithStatus(http.StatusBadRequest).
		WithError("invalid request parameters").
		WithCode(cannotParseParams).
		Build()
}

func BodyParseProblem() Problem {
	return NewProblem().
		WithStatus(http.StatusBadRequest).
		WithError("cannot read request payload").
		WithCode(cannotParseBody).
		Build()
}

func NotFoundProblem(message string) Problem {
	return NewProblem().
		WithStatus(http.StatusNotFound).
		WithError(message).
		WithCode(genericNotFound).
		Build()
}

// ConflictProblem maps uniqueness and referential violations. The original
// contract reports these as 400, not 409.
func ConflictProblem(message string) Problem {
	return NewProblem().
		WithStatus(http.StatusBadRequest).
		WithError(message).
		WithCode(genericConflict).
		Build()
}

// UpstreamProblem relays a third-party failure. The provider message lands in
// details; the error string stays a local summary.
func UpstreamProblem(message string, cause error) Problem {
	log.Warn().Err(cause).Msg("Upstream call failed: " + message)
	p := NewProblem().
		WithStatus(http.StatusInternalServerError).
		WithError(message).
		WithCode(upstreamFailure)
	if cause != nil {
		p = p.WithDetails(cause.Error())
	}
	return p.Build()
}

func UnexpectedProblem(err error) Problem {
	log.Warn().Err(err).Msg("Unexpected error while handling request: " + err.Error())
	return NewProblem().
		WithStatus(http.StatusInternalServerError).
		WithError("internal server error").
		WithCode(genericUnexpectedError).
		Build()
}
