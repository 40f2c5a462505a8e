// Package sfnio starts the downstream notification workflow on Step Functions.
package sfnio

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"go.uber.org/zap"
)

// StartExecutionAPI is the subset of the Step Functions client used by Trigger.
type StartExecutionAPI interface {
	StartExecution(ctx context.Context, params *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
}

// Trigger starts executions of one configured state machine.
type Trigger struct {
	client StartExecutionAPI
	arn    string
	log    *zap.Logger
}

// NewTrigger wires a Trigger for the given state machine.
func NewTrigger(client StartExecutionAPI, stateMachineARN string, log *zap.Logger) *Trigger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trigger{client: client, arn: stateMachineARN, log: log}
}

// Start begins a workflow execution with input as its payload. The
// execution is fire-and-forget: its ARN is logged, never awaited.
func (t *Trigger) Start(ctx context.Context, input []byte) error {
	out, err := t.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(t.arn),
		Input:           aws.String(string(input)),
	})
	if err != nil {
		return err
	}
	t.log.Info("workflow execution started",
		zap.String("state_machine_arn", t.arn),
		zap.String("execution_arn", aws.ToString(out.ExecutionArn)))
	return nil
}
