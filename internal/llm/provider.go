// Package llm is the boundary to the remote generative model.
//
// Providers are deliberately thin: one request in, one text out. Routing,
// prompt construction and decoding live in the classify and journal packages.
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned when no credential is available for a provider.
var ErrMissingAPIKey = errors.New("missing API key")

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Schema constrains the model output to a JSON document.
type Schema struct {
	Name        string
	Description string
	Definition  any
}

// Request is one generation call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature *float64
	Schema      *Schema
}

// Provider generates text for a request.
type Provider interface {
	// Generate returns the model's text output. When req.Schema is set the
	// output is expected, not guaranteed, to be a JSON document matching it.
	Generate(ctx context.Context, req Request) (string, error)

	// Name identifies the provider in logs.
	Name() string
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 {
	return &v
}
