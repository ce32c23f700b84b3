// Package extract turns one user turn into a slot delta: the order fields
// that turn newly contributes. Two interchangeable strategies exist — a
// rule-based matcher over the catalog vocabulary and a Gemini-backed
// parser — behind one contract, with a dispatcher that falls back from
// the model to the rules on any failure.
package extract

import "context"

// Delta carries the slots one extraction pass found. A zero value means
// the slot was absent from the turn; absence never implies a default.
type Delta struct {
	Product       string `json:"product,omitempty"`
	Specification string `json:"specification,omitempty"`
	QuantityKg    int    `json:"quantity_kg,omitempty"`
	Grade         string `json:"grade,omitempty"`
	City          string `json:"city,omitempty"`
}

// Empty reports whether the pass found no slot signal at all.
func (d Delta) Empty() bool {
	return d == Delta{}
}

// Extractor is the single contract both strategies satisfy. prior is a
// snapshot of the already-collected context, available to strategies that
// canonicalize against it; implementations never mutate it. Extract does
// not error on malformed input — an unintelligible turn is an empty
// delta, not a failure.
type Extractor interface {
	Extract(ctx context.Context, text string, prior Delta) (Delta, error)
}
