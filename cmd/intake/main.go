// Package main receives lab-test result submissions, persists an alert
// record for critical values, and starts the notification workflow.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/medalert/critical-result-intake/internal/awsutil"
	"github.com/medalert/critical-result-intake/internal/config"
	"github.com/medalert/critical-result-intake/internal/ddb"
	"github.com/medalert/critical-result-intake/internal/httpx"
	"github.com/medalert/critical-result-intake/internal/intake"
	"github.com/medalert/critical-result-intake/internal/logging"
	"github.com/medalert/critical-result-intake/internal/sfnio"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// App holds the application state: the intake service with its
// AWS-backed collaborators.
type App struct {
	svc *intake.Service
	log *zap.Logger
}

// main initializes the app and starts the Lambda handler.
func main() {
	env := config.MustLoad()
	logger, err := logging.New(env.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	cfg, _, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	store := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}
	trigger := sfnio.NewTrigger(sfn.NewFromConfig(cfg), env.StateMachineARN, logger)

	app := &App{
		svc: intake.NewService(store, trigger, logger),
		log: logger,
	}
	lambda.Start(app.handler)
}

// ---- Handler ----

// eventProbe sniffs the HTTP method out of a gateway event, if the
// payload is one. Direct invocations carry neither field.
type eventProbe struct {
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		HTTP struct {
			Method string `json:"method"`
		} `json:"http"`
	} `json:"requestContext"`
}

// handler processes one raw invocation payload: either a gateway event
// whose body is the submission JSON, or the submission mapping itself.
// Failures are always returned as a structured response, never as a
// handler error.
func (a *App) handler(ctx context.Context, raw json.RawMessage) (events.APIGatewayV2HTTPResponse, error) {
	logger := a.log.With(zap.String("invocation_id", ulid.Make().String()))

	if isPreflight(raw) {
		return httpx.JSON(http.StatusOK, struct{}{})
	}

	sub, err := intake.ParseEvent(raw, time.Now().UTC())
	if err != nil {
		logger.Warn("rejected submission", zap.Error(err))
		return httpx.Error(statusFor(err), err.Error())
	}

	resp, err := a.svc.Process(ctx, sub)
	if err != nil {
		logger.Error("process failed",
			zap.String("result_id", sub.ResultID),
			zap.Error(err))
		return httpx.Error(statusFor(err), err.Error())
	}

	logger.Info("submission processed",
		zap.String("result_id", resp.ResultID),
		zap.String("status", resp.Status),
		zap.Bool("critical", resp.Critical))
	return httpx.JSON(http.StatusOK, resp)
}

// ---- Helpers ----

// isPreflight reports whether the payload is a CORS preflight request.
func isPreflight(raw []byte) bool {
	var probe eventProbe
	if json.Unmarshal(raw, &probe) != nil {
		return false
	}
	return probe.HTTPMethod == http.MethodOptions || probe.RequestContext.HTTP.Method == http.MethodOptions
}

// statusFor maps typed intake failures onto response status codes.
func statusFor(err error) int {
	switch intake.KindOf(err) {
	case intake.KindInvalidPayload, intake.KindMissingField:
		return http.StatusBadRequest
	case intake.KindStoreUnavailable, intake.KindTriggerUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
