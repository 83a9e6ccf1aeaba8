// Package llm defines the model-agnostic LLM provider abstraction.
// All types here are shared between the provider interface and adapters.
package llm

// GenerateRequest is the input for a non-streaming text generation call.
type GenerateRequest struct {
	// Model overrides the provider default when non-empty.
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// GenerateResponse is the output from a non-streaming generation call.
type GenerateResponse struct {
	Text       string // The generated text.
	StopReason string // e.g. "STOP", "MAX_TOKENS"
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID        string // e.g. "gemini-1.5-flash-latest"
	Provider  string // e.g. "gemini"
	Version   string // e.g. "v1beta"
	MaxTokens int    // Maximum context window size.
}
