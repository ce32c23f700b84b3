package extract

import (
	"context"
	"log/slog"
	"time"
)

const defaultModelTimeout = 8 * time.Second

// Fallback dispatches to the model strategy when one is configured and
// falls back to the rules for the turn on any model failure. The
// dialogue manager only ever sees the shared contract; which strategy
// answered is invisible to it.
type Fallback struct {
	model   Extractor
	rules   Extractor
	timeout time.Duration
	logger  *slog.Logger
}

// New builds the dispatcher. model may be nil, which makes the rules the
// only strategy. timeout bounds each model call; zero means the default.
func New(model, rules Extractor, timeout time.Duration, logger *slog.Logger) *Fallback {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	return &Fallback{model: model, rules: rules, timeout: timeout, logger: logger}
}

func (f *Fallback) Extract(ctx context.Context, text string, prior Delta) (Delta, error) {
	if f.model != nil {
		mctx, cancel := context.WithTimeout(ctx, f.timeout)
		d, err := f.model.Extract(mctx, text, prior)
		cancel()
		if err == nil {
			return d, nil
		}
		// Recovered locally; the user never sees extraction unavailability.
		f.logger.Warn("model extraction unavailable, using rules", "error", err)
	}
	return f.rules.Extract(ctx, text, prior)
}
