package intake

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/medalert/critical-result-intake/internal/api"
	"github.com/medalert/critical-result-intake/internal/models"
	"github.com/medalert/critical-result-intake/internal/validate"
)

// RecordStore persists alert records keyed by result id.
type RecordStore interface {
	PutAlert(ctx context.Context, rec models.AlertRecord) error
}

// WorkflowTrigger starts the downstream notification workflow with the
// original submission JSON as input.
type WorkflowTrigger interface {
	Start(ctx context.Context, input []byte) error
}

// Service performs the decide-and-dispatch step for one submission:
// classify, persist when critical, trigger the workflow.
type Service struct {
	store   RecordStore
	trigger WorkflowTrigger
	log     *zap.Logger
}

// NewService wires a Service with its two collaborators.
func NewService(store RecordStore, trigger WorkflowTrigger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, trigger: trigger, log: log}
}

// Process handles one parsed submission. A normal result returns
// immediately with no side effects. A critical result writes the alert
// record first and then starts the workflow; the two are not atomic, so
// a trigger failure leaves the PENDING record behind (surfaced in the
// error and the log, not reconciled).
func (s *Service) Process(ctx context.Context, sub models.Submission) (api.Response, error) {
	if !Classify(sub) {
		s.log.Info("result normal",
			zap.String("result_id", sub.ResultID),
			zap.String("test_name", sub.TestName),
			zap.Float64("value", sub.Value))
		return api.Response{ResultID: sub.ResultID, Status: api.StatusNormal, Critical: false}, nil
	}

	rec, err := buildAlertRecord(sub, time.Now().UTC())
	if err != nil {
		return api.Response{}, err
	}

	if err := s.store.PutAlert(ctx, rec); err != nil {
		return api.Response{}, &Error{
			Kind: KindStoreUnavailable,
			Err:  fmt.Errorf("put alert %s: %w", sub.ResultID, err),
		}
	}
	s.log.Info("alert record written",
		zap.String("result_id", sub.ResultID),
		zap.String("status", string(rec.Status)))

	if err := s.trigger.Start(ctx, sub.Raw); err != nil {
		s.log.Warn("workflow trigger failed, PENDING record left unreconciled",
			zap.String("result_id", sub.ResultID),
			zap.Error(err))
		return api.Response{}, &Error{
			Kind: KindTriggerUnavailable,
			Err:  fmt.Errorf("start workflow for %s: %w", sub.ResultID, err),
		}
	}

	return api.Response{ResultID: sub.ResultID, Status: api.StatusCriticalAlertSent, Critical: true}, nil
}

// buildAlertRecord checks the critical-path fields and assembles the row
// to persist. Missing fields fail here, before anything is written.
func buildAlertRecord(sub models.Submission, now time.Time) (models.AlertRecord, error) {
	if err := validate.PatientName(sub.PatientName); err != nil {
		return models.AlertRecord{}, missingField(err)
	}
	if err := validate.CriticalityLevel(sub.CriticalityLevel); err != nil {
		return models.AlertRecord{}, missingField(err)
	}
	return models.AlertRecord{
		ResultID:     sub.ResultID,
		Status:       models.StatusPending,
		Acknowledged: false,
		Timestamp:    now.Format(time.RFC3339),
		DetailsSummary: fmt.Sprintf("CRITICO: %s tiene %s en %s. Nivel: %s",
			sub.PatientName, sub.TestName, formatValue(sub.Value), sub.CriticalityLevel),
	}, nil
}

// formatValue renders a measurement without trailing zeros (7.2 -> "7.2",
// 140 -> "140").
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
