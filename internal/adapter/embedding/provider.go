package embedding

import (
	"context"
	"fmt"
	"time"

	"garage/internal/port"
)

// NewFromConfig selects the embedding provider once at startup. Remote
// providers are wrapped in Resilient so callers never see embedding errors;
// the local provider is returned bare since it cannot fail.
func NewFromConfig(ctx context.Context, provider, apiKeyEnv, model string, dimension int, timeout time.Duration) (port.Embedder, error) {
	switch provider {
	case "", "local":
		return NewLocal(dimension), nil
	case "openai":
		remote, err := NewOpenAI(apiKeyEnv, model)
		if err != nil {
			return nil, err
		}
		return NewResilient(remote, timeout), nil
	case "gemini":
		remote, err := NewGemini(ctx, apiKeyEnv, model)
		if err != nil {
			return nil, err
		}
		return NewResilient(remote, timeout), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", provider)
	}
}
