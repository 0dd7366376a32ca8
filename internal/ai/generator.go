// Package ai describes the generative text capability consumed by the
// extraction pipeline.
package ai

import "context"

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
)

// Generator is an opaque text-in/text-out model.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
