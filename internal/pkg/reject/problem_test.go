package reject

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemSerialization(t *testing.T) {
	problem := RequestValidationProblem("name is required")

	serialized, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(serialized, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "name is required", decoded["error"])
	assert.Equal(t, "error.generic.invalid-request-payload", decoded["code"])
	// Status travels out of band as the HTTP status, never in the body.
	assert.NotContains(t, decoded, "Status")
	assert.NotContains(t, decoded, "status")
	assert.NotContains(t, decoded, "details")
}

func TestProblemStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, RequestValidationProblem("x").Status)
	assert.Equal(t, http.StatusBadRequest, RequestParamsProblem().Status)
	assert.Equal(t, http.StatusBadRequest, BodyParseProblem().Status)
	assert.Equal(t, http.StatusNotFound, NotFoundProblem("x").Status)
	assert.Equal(t, http.StatusBadRequest, ConflictProblem("x").Status)
	assert.Equal(t, http.StatusInternalServerError, UpstreamProblem("x", nil).Status)
	assert.Equal(t, http.StatusInternalServerError, UnexpectedProblem(errors.New("boom")).Status)
}

func TestUpstreamProblemCarriesCauseInDetails(t *testing.T) {
	problem := UpstreamProblem("error minting", errors.New("crossmint replied 403: forbidden"))

	assert.Equal(t, "error minting", problem.Error)
	assert.Equal(t, "crossmint replied 403: forbidden", problem.Details)

	bare := UpstreamProblem("error minting", nil)
	assert.Empty(t, bare.Details)
}

func TestUnexpectedProblemHidesInternals(t *testing.T) {
	problem := UnexpectedProblem(errors.New("pq: connection refused"))

	assert.Equal(t, "internal server error", problem.Error)
	assert.Empty(t, problem.Details)
}
