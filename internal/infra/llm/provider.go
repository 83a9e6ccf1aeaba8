// Package llm — Provider interface.
// Adapters (Gemini, etc.) implement this interface so the application is
// never coupled to a specific LLM vendor.
package llm

import "context"

// Provider is the model-agnostic interface for text generation.
type Provider interface {
	// GenerateContent performs a non-streaming generation call.
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
