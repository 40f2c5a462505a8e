// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env holds the configuration values for the application.
type Env struct {
	Region          string
	Table           string
	StateMachineARN string
	LogLevel        string
}

// MustLoad reads the environment variables and returns an Env struct.
func MustLoad() Env {
	_ = godotenv.Load() // best effort, for local runs outside Lambda
	e := Env{
		Region:          get("AWS_REGION", "us-east-1"),
		Table:           must("TABLE_NAME"),
		StateMachineARN: must("SFN_ARN"),
		LogLevel:        get("LOG_LEVEL", "info"),
	}
	return e
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// must returns the value of the environment variable k or panics if not set.
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic(fmt.Errorf("missing env %s", k))
	}
	return v
}
