package intake_test

import (
	"context"

	"github.com/medalert/critical-result-intake/internal/models"
)

// fakeStore is an in-memory RecordStore for unit tests.
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

// fakeTrigger records workflow inputs instead of starting executions.
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
