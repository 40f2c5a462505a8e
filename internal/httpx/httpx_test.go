package httpx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medalert/critical-result-intake/internal/api"
	"github.com/medalert/critical-result-intake/internal/httpx"
)

func TestJSON_CarriesFullCORSHeaderSet(t *testing.T) {
	resp, err := httpx.JSON(200, api.Response{ResultID: "R1", Status: api.StatusNormal})
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "Content-Type", resp.Headers["Access-Control-Allow-Headers"])
	assert.Equal(t, "OPTIONS,POST", resp.Headers["Access-Control-Allow-Methods"])

	var body api.Response
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "R1", body.ResultID)
}

func TestError_CarriesOriginOnly(t *testing.T) {
	resp, err := httpx.Error(502, "start workflow for R1: state machine unavailable")
	require.NoError(t, err)

	assert.Equal(t, 502, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.NotContains(t, resp.Headers, "Access-Control-Allow-Methods")
	assert.NotContains(t, resp.Headers, "Access-Control-Allow-Headers")

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "start workflow for R1: state machine unavailable", body.Error)
}
