package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medalert/critical-result-intake/internal/api"
	"github.com/medalert/critical-result-intake/internal/intake"
	"github.com/medalert/critical-result-intake/internal/models"
)

type fakeStore struct {
	records []models.AlertRecord
	err     error
}

func (f *fakeStore) PutAlert(_ context.Context, rec models.AlertRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeTrigger struct {
	inputs [][]byte
	err    error
}

func (f *fakeTrigger) Start(_ context.Context, input []byte) error {
	if f.err != nil {
		return f.err
	}
	f.inputs = append(f.inputs, input)
	return nil
}

func newTestApp(store *fakeStore, trigger *fakeTrigger) *App {
	return &App{
		svc: intake.NewService(store, trigger, zap.NewNop()),
		log: zap.NewNop(),
	}
}

func TestHandler_CriticalSubmission(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{}
	app := newTestApp(store, trigger)

	raw := json.RawMessage(`{"test_name": "Potassium", "value": 7.2, "result_id": "R1", "patient_name": "Jane Doe", "criticality": {"level": "HIGH"}}`)
	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "OPTIONS,POST", resp.Headers["Access-Control-Allow-Methods"])

	var body api.Response
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, api.Response{ResultID: "R1", Status: api.StatusCriticalAlertSent, Critical: true}, body)

	require.Len(t, store.records, 1)
	assert.Equal(t, "CRITICO: Jane Doe tiene Potassium en 7.2. Nivel: HIGH", store.records[0].DetailsSummary)
	require.Len(t, trigger.inputs, 1)
	assert.JSONEq(t, string(raw), string(trigger.inputs[0]))
}

func TestHandler_NormalBoundaryViaWrappedBody(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{}
	app := newTestApp(store, trigger)

	raw, err := json.Marshal(map[string]string{"body": `{"test_name": "potassium", "value": 2.5}`})
	require.NoError(t, err)

	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body api.Response
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, api.StatusNormal, body.Status)
	assert.False(t, body.Critical)
	assert.NotEmpty(t, body.ResultID)

	assert.Empty(t, store.records)
	assert.Empty(t, trigger.inputs)
}

func TestHandler_DecodeFailure(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeTrigger{})

	raw, err := json.Marshal(map[string]string{"body": "not valid json"})
	require.NoError(t, err)

	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Contains(t, body.Error, "decode submission")
}

func TestHandler_MissingCriticalFields(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{}
	app := newTestApp(store, trigger)

	raw := json.RawMessage(`{"is_critical": true, "test_name": "sodium", "value": 140}`)
	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 400, resp.StatusCode)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Contains(t, body.Error, "patient_name required")

	assert.Empty(t, store.records)
	assert.Empty(t, trigger.inputs)
}

func TestHandler_StoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("table unavailable")}
	trigger := &fakeTrigger{}
	app := newTestApp(store, trigger)

	raw := json.RawMessage(`{"test_name": "potassium", "value": 1.0, "patient_name": "Jane Doe", "criticality": {"level": "HIGH"}}`)
	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 502, resp.StatusCode)
	assert.Empty(t, trigger.inputs)
}

func TestHandler_TriggerFailureSurfacedAfterWrite(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{err: errors.New("state machine unavailable")}
	app := newTestApp(store, trigger)

	raw := json.RawMessage(`{"test_name": "potassium", "value": 9.9, "patient_name": "Jane Doe", "criticality": {"level": "HIGH"}}`)
	resp, err := app.handler(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 502, resp.StatusCode)
	// The PENDING record was already written and stays behind.
	assert.Len(t, store.records, 1)
}

func TestHandler_PreflightShortCircuits(t *testing.T) {
	store := &fakeStore{}
	trigger := &fakeTrigger{}
	app := newTestApp(store, trigger)

	for _, raw := range []string{
		`{"httpMethod": "OPTIONS"}`,
		`{"requestContext": {"http": {"method": "OPTIONS"}}}`,
	} {
		resp, err := app.handler(context.Background(), json.RawMessage(raw))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "OPTIONS,POST", resp.Headers["Access-Control-Allow-Methods"])
	}
	assert.Empty(t, store.records)
	assert.Empty(t, trigger.inputs)
}
