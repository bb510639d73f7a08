package port

import "context"

// Generator produces a reply for a prompt. It abstracts whichever external
// text-generation service is configured; callers treat it as opaque.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
