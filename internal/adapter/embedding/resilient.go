package embedding

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"garage/internal/port"
)

// DefaultTimeout bounds a single remote embedding call.
const DefaultTimeout = 30 * time.Second

// Resilient wraps a remote embedder with a per-call timeout and a
// deterministic local fallback. Its Embed never returns an error: when the
// remote provider fails or times out, the local embedding is returned and a
// warning is logged. The fallback shares the remote dimension so one index
// never mixes vector sizes.
type Resilient struct {
	remote  port.Embedder
	local   *Local
	timeout time.Duration
}

// NewResilient wraps remote with timeout and fallback behavior.
func NewResilient(remote port.Embedder, timeout time.Duration) *Resilient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resilient{
		remote:  remote,
		local:   NewLocal(remote.Dimension()),
		timeout: timeout,
	}
}

func (e *Resilient) Embed(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vec, err := e.remote.Embed(callCtx, text)
	if err != nil || len(vec) == 0 {
		log.Warn("embedding provider failed, using local fallback",
			"model", e.remote.ModelName(), "err", err)
		return e.local.Embed(ctx, text)
	}
	return vec, nil
}

func (e *Resilient) Dimension() int {
	return e.remote.Dimension()
}

func (e *Resilient) ModelName() string {
	return e.remote.ModelName()
}
