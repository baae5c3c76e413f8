// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai abstracts the generative text API behind a capability
// interface. Components that need prose or topic lists depend on Backend
// and degrade to deterministic templates when it fails, so no generation
// error is ever fatal to a vault run.
package genai

import (
	"context"
	"errors"

	"github.com/pdiddy/vault-engine/pkg/types"
)

// ErrUnavailable is returned by NullBackend for every request. Callers treat
// it like any other backend failure and fall back to templates.
var ErrUnavailable = errors.New("genai: no provider configured")

// TextRequest holds the parameters for one generation call.
type TextRequest struct {
	// System is the system-role instruction framing the request.
	System string

	// Prompt is the user-role request body.
	Prompt string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens bounds the response length.
	MaxTokens int
}

// Backend generates text from a prompt. Implementations may fail with a
// provider error; callers must treat every failure as a cue to fall back,
// never as a reason to abort.
type Backend interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// NullBackend is the fallback variant selected when no API key is
// configured. Every call fails with ErrUnavailable, pushing callers onto
// their deterministic template paths.
type NullBackend struct{}

// GenerateText always fails with ErrUnavailable.
func (NullBackend) GenerateText(context.Context, TextRequest) (string, error) {
	return "", ErrUnavailable
}

// New selects the backend variant once, at construction: an OpenAI-backed
// provider when an API key is present, NullBackend otherwise.
func New(cfg types.AIConfig) Backend {
	if cfg.APIKey == "" {
		return NullBackend{}
	}
	return &OpenAIBackend{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
	}
}
