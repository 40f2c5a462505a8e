// Package httpx provides helper functions for creating HTTP responses.
package httpx

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"

	"github.com/medalert/critical-result-intake/internal/api"
)

// JSON creates a JSON HTTP response with the given status code and value.
// Success responses carry the full CORS header set so browser callers can
// read them without extra gateway configuration.
func JSON(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(v)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "OPTIONS,POST",
		},
		Body: string(b),
	}, nil
}

// Error creates a JSON HTTP error response with the given status code and
// message. Error responses carry only the origin header.
func Error(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(api.ErrorResponse{Error: msg})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(b),
	}, nil
}
