// Package llm abstracts the text-generation providers behind the advisory
// feature. The simulation engine never imports this package; it only
// produces the snapshot the advisor forwards.
package llm

import "context"

// Options tunes a single generation call. The zero value is a sensible
// default for advisory prose.
type Options struct {
	Model       string  // provider-specific model override
	Temperature float64 // 0 means provider default
	JSONMode    bool    // request a JSON object response
	MaxTokens   int     // 0 means provider default
}

// Provider is the interface every text-generation backend implements.
type Provider interface {
	// Name identifies the provider in configuration and logs.
	Name() string

	// Generate sends a prompt with an optional system instruction and
	// returns the raw model text. Implementations must respect ctx
	// cancellation; the advisory feature is cancelled and retried
	// independently of the engine.
	Generate(ctx context.Context, prompt, systemPrompt string, opts Options) (string, error)
}
