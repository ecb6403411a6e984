package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// ErrorEnvelope matches the API error body
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// AssertErrorResponse verifies error response with expected status and code
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedCode string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var envelope ErrorEnvelope
	AssertJSONResponse(t, resp, &envelope)
	assert.Equal(t, expectedCode, envelope.Code, "error code mismatch")
}
