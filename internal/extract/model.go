package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
)

// JSONGenerator is the model boundary: one prompt in, one JSON document
// out. *gemini.Client satisfies it.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Model is the model-backed strategy. The raw model output is untrusted:
// every field is canonicalized back through the catalog before it may
// enter a delta, and anything unrecognized is treated as absent.
type Model struct {
	gen    JSONGenerator
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewModel(gen JSONGenerator, cat *catalog.Catalog, logger *slog.Logger) *Model {
	return &Model{gen: gen, cat: cat, logger: logger}
}

type modelReply struct {
	Product       *string  `json:"product"`
	Specification *string  `json:"specification"`
	QuantityKg    *float64 `json:"quantity_kg"`
	Grade         *string  `json:"grade"`
	City          *string  `json:"city"`
}

func (m *Model) Extract(ctx context.Context, text string, prior Delta) (Delta, error) {
	raw, err := m.gen.GenerateJSON(ctx, buildPrompt(text, prior, m.cat))
	if err != nil {
		return Delta{}, fmt.Errorf("model extraction: %w", err)
	}
	d, err := m.parse(raw, prior)
	if err != nil {
		m.logger.Warn("unparsable model reply", "error", err, "raw", string(raw))
		return Delta{}, fmt.Errorf("parse model reply: %w", err)
	}
	return d, nil
}

func (m *Model) parse(raw json.RawMessage, prior Delta) (Delta, error) {
	var reply modelReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return Delta{}, err
	}

	var d Delta
	if reply.Product != nil {
		if p, ok := m.cat.MatchProduct(*reply.Product); ok {
			d.Product = p.Key
		}
	}
	if reply.Specification != nil {
		product := d.Product
		if product == "" {
			product = prior.Product
		}
		if n := specNumber(*reply.Specification); n != "" {
			d.Specification = NewRules(m.cat).canonicalSpec(n, product)
		}
	}
	if reply.QuantityKg != nil {
		// Models occasionally return fractional kilograms; round to the
		// nearest whole kg rather than truncating.
		if kg := *reply.QuantityKg; kg > 0 && kg < math.MaxInt32 {
			d.QuantityKg = int(math.Round(kg))
		}
	}
	if reply.Grade != nil {
		if g, ok := m.cat.MatchGrade(*reply.Grade); ok {
			d.Grade = g.Key
		}
	}
	if reply.City != nil {
		if c, ok := m.cat.MatchCity(*reply.City); ok {
			d.City = c.Key
		}
	}
	return d, nil
}

// specNumber pulls the numeric part out of a model-supplied
// specification like "5%", "5 percent" or "5".
func specNumber(s string) string {
	if m := specRe.FindStringSubmatch(s); m != nil {
		return trimNumber(m[1])
	}
	if m := bareNumberRe.FindStringSubmatch(s); m != nil {
		return trimNumber(m[1])
	}
	return ""
}
