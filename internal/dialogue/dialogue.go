// Package dialogue owns the per-conversation state machine. A
// Conversation accumulates order slots across turns in a fixed collection
// priority, validates them against the catalog and produces a quote once
// all five are filled. One Conversation serves one sequential stream of
// turns; callers that host many users keep one Conversation per session.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
	"github.com/alchemy-chemicals/quotebot/internal/extract"
	"github.com/alchemy-chemicals/quotebot/internal/pricing"
)

// Slot names one of the five required order attributes.
type Slot string

const (
	SlotProduct       Slot = "product"
	SlotSpecification Slot = "specification"
	SlotQuantity      Slot = "quantity"
	SlotGrade         Slot = "grade"
	SlotCity          Slot = "city"
)

// collectionOrder is the fixed priority the machine prompts in,
// independent of the order the user supplies values.
var collectionOrder = []Slot{SlotProduct, SlotSpecification, SlotQuantity, SlotGrade, SlotCity}

// State is the coarse conversation state.
type State string

const (
	StateEmpty      State = "empty"
	StateCollecting State = "collecting"
	StateComplete   State = "complete"
)

// Order is the accumulated slot context for one conversation. Zero
// values mean "not yet supplied".
type Order struct {
	Product       string `json:"product,omitempty"`
	Specification string `json:"specification,omitempty"`
	QuantityKg    int    `json:"quantity_kg,omitempty"`
	Grade         string `json:"grade,omitempty"`
	City          string `json:"city,omitempty"`
}

func (o Order) snapshot() extract.Delta {
	return extract.Delta{
		Product:       o.Product,
		Specification: o.Specification,
		QuantityKg:    o.QuantityKg,
		Grade:         o.Grade,
		City:          o.City,
	}
}

// merge applies a delta. A slot already set is only replaced by an
// explicit new value, never cleared by absence.
func (o *Order) merge(d extract.Delta) bool {
	changed := false
	if d.Product != "" && d.Product != o.Product {
		o.Product = d.Product
		changed = true
	}
	if d.Specification != "" && d.Specification != o.Specification {
		o.Specification = d.Specification
		changed = true
	}
	if d.QuantityKg > 0 && d.QuantityKg != o.QuantityKg {
		o.QuantityKg = d.QuantityKg
		changed = true
	}
	if d.Grade != "" && d.Grade != o.Grade {
		o.Grade = d.Grade
		changed = true
	}
	if d.City != "" && d.City != o.City {
		o.City = d.City
		changed = true
	}
	return changed
}

func (o Order) filled(s Slot) bool {
	switch s {
	case SlotProduct:
		return o.Product != ""
	case SlotSpecification:
		return o.Specification != ""
	case SlotQuantity:
		return o.QuantityKg > 0
	case SlotGrade:
		return o.Grade != ""
	case SlotCity:
		return o.City != ""
	}
	return false
}

func (o Order) firstMissing() (Slot, bool) {
	for _, s := range collectionOrder {
		if !o.filled(s) {
			return s, true
		}
	}
	return "", false
}

// ReplyKind tags what the manager wants said next. Rendering is the
// composer's concern; the manager only emits data.
type ReplyKind string

const (
	ReplyGreeting      ReplyKind = "greeting"
	ReplyPrompt        ReplyKind = "prompt"
	ReplyClarification ReplyKind = "clarification"
	ReplyQuote         ReplyKind = "quote"
	ReplyUnrecognized  ReplyKind = "unrecognized"
)

// Reply is the manager's one-way emission for a turn.
type Reply struct {
	Kind     ReplyKind
	Known    Order          // context after the turn
	NextSlot Slot           // set for prompts
	Field    Slot           // set for clarifications
	Reason   string         // set for clarifications
	Quote    *pricing.Quote // set when the order is complete
}

// Conversation threads one user's order through successive turns.
type Conversation struct {
	cat    *catalog.Catalog
	ext    extract.Extractor
	logger *slog.Logger

	order Order
	quote *pricing.Quote
}

func NewConversation(cat *catalog.Catalog, ext extract.Extractor, logger *slog.Logger) *Conversation {
	return &Conversation{cat: cat, ext: ext, logger: logger}
}

// Order returns the accumulated context.
func (c *Conversation) Order() Order { return c.order }

// Quote returns the current quote, if the conversation has completed.
func (c *Conversation) Quote() (pricing.Quote, bool) {
	if c.quote == nil {
		return pricing.Quote{}, false
	}
	return *c.quote, true
}

// State derives the coarse state from the context.
func (c *Conversation) State() State {
	if c.order == (Order{}) {
		return StateEmpty
	}
	if _, missing := c.order.firstMissing(); missing || c.quote == nil {
		return StateCollecting
	}
	return StateComplete
}

// Turn processes one user message and decides the next move: reset on a
// greeting, merge extracted slots, validate, then either prompt for the
// first missing slot or price the completed order. A revision after
// completion merges like any other turn and re-prices immediately.
func (c *Conversation) Turn(ctx context.Context, text string) (Reply, error) {
	if extract.IsGreeting(text) || extract.IsReset(text) {
		c.reset()
		return Reply{Kind: ReplyGreeting}, nil
	}

	delta, err := c.ext.Extract(ctx, text, c.order.snapshot())
	if err != nil {
		return Reply{}, fmt.Errorf("extract turn: %w", err)
	}

	if delta.Empty() {
		if q, ok := c.Quote(); ok {
			// Follow-up chatter after a quote keeps the quote on the table.
			return Reply{Kind: ReplyQuote, Known: c.order, Quote: &q}, nil
		}
		return Reply{Kind: ReplyUnrecognized, Known: c.order}, nil
	}

	if c.order.merge(delta) {
		c.quote = nil
	}

	if reply, ok := c.validate(); !ok {
		return reply, nil
	}

	if slot, missing := c.order.firstMissing(); missing {
		return Reply{Kind: ReplyPrompt, Known: c.order, NextSlot: slot}, nil
	}

	if c.quote == nil {
		q, err := pricing.Price(pricing.Order{
			Product:       c.order.Product,
			Specification: c.order.Specification,
			QuantityKg:    c.order.QuantityKg,
			Grade:         c.order.Grade,
			City:          c.order.City,
		}, c.cat)
		if err != nil {
			// Validation ran first; reaching this is a programming error.
			return Reply{}, fmt.Errorf("price completed order: %w", err)
		}
		c.quote = &q
		c.logger.Info("order complete",
			"product", c.order.Product,
			"specification", c.order.Specification,
			"quantity_kg", c.order.QuantityKg,
			"grade", c.order.Grade,
			"city", c.order.City,
			"total", q.Total.StringFixed(2),
		)
	}

	q := *c.quote
	return Reply{Kind: ReplyQuote, Known: c.order, Quote: &q}, nil
}

// validate cross-checks filled slots against the catalog. An invalid
// value is dropped so the machine re-collects it; everything else stays.
func (c *Conversation) validate() (Reply, bool) {
	if c.order.Product == "" {
		return Reply{}, true
	}
	product, ok := c.cat.Product(c.order.Product)
	if !ok {
		// Extraction only emits catalog keys; an unknown key is a bug.
		c.logger.Error("context holds unknown product", "product", c.order.Product)
		c.order.Product = ""
		return Reply{Kind: ReplyClarification, Known: c.order, Field: SlotProduct,
			Reason: "that product is not in our catalog"}, false
	}

	if c.order.Specification != "" {
		spec, ok := product.Spec(c.order.Specification)
		if !ok {
			offered := c.order.Specification
			c.order.Specification = ""
			return Reply{
				Kind:   ReplyClarification,
				Known:  c.order,
				Field:  SlotSpecification,
				Reason: fmt.Sprintf("%s is not offered at %s", product.Name, offered),
			}, false
		}
		if c.order.QuantityKg > 0 && c.order.QuantityKg < spec.MinOrderKg {
			asked := c.order.QuantityKg
			c.order.QuantityKg = 0
			return Reply{
				Kind:   ReplyClarification,
				Known:  c.order,
				Field:  SlotQuantity,
				Reason: fmt.Sprintf("minimum order for %s %s is %dkg, you asked for %dkg", product.Name, spec.Label, spec.MinOrderKg, asked),
			}, false
		}
	}
	return Reply{}, true
}

// reset clears the whole context in one step; no partial state survives.
func (c *Conversation) reset() {
	c.order = Order{}
	c.quote = nil
}
