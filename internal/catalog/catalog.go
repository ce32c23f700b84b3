// Package catalog holds the static reference data a quotation is priced
// against: products with their specifications, grades, delivery cities and
// volume discount tiers. The catalog is loaded once at startup and is
// read-only afterwards, so it is safe to share across conversations.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/alchemy-chemicals/quotebot/internal/match"
)

// Spec is one concentration a product is offered at.
type Spec struct {
	Label      string          // e.g. "5%"
	BasePrice  decimal.Decimal // per kg, INR
	MinOrderKg int
}

// Product is one catalog entry. Aliases cover common misspellings and
// trade names so lookups tolerate what buyers actually type.
type Product struct {
	Key       string
	Name      string
	AssayUnit string // what the specification percentage measures
	Aliases   []string
	Specs     []Spec
}

// Spec returns the specification with the given label.
func (p *Product) Spec(label string) (Spec, bool) {
	for _, s := range p.Specs {
		if s.Label == label {
			return s, true
		}
	}
	return Spec{}, false
}

// SpecLabels lists the offered concentrations in catalog order.
func (p *Product) SpecLabels() []string {
	labels := make([]string, len(p.Specs))
	for i, s := range p.Specs {
		labels[i] = s.Label
	}
	return labels
}

// Grade carries the per-grade price premium in percent.
type Grade struct {
	Key        string
	PremiumPct int64
	Aliases    []string
}

// City carries the flat delivery cost for a destination.
type City struct {
	Key          string
	DeliveryCost decimal.Decimal
	Aliases      []string
}

// DiscountTier is one step of the volume discount table.
type DiscountTier struct {
	MinKg       int
	MaxKg       int // 0 = open-ended
	DiscountPct int64
}

// Catalog is the full reference data set.
type Catalog struct {
	Products []Product
	Grades   []Grade
	Cities   []City
	Tiers    []DiscountTier
	TaxRate  decimal.Decimal
}

// Product returns the product with the given key.
func (c *Catalog) Product(key string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].Key == key {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// Grade returns the grade with the given key.
func (c *Catalog) Grade(key string) (Grade, bool) {
	for _, g := range c.Grades {
		if g.Key == key {
			return g, true
		}
	}
	return Grade{}, false
}

// City returns the city with the given key.
func (c *Catalog) City(key string) (City, bool) {
	for _, ct := range c.Cities {
		if ct.Key == key {
			return ct, true
		}
	}
	return City{}, false
}

// fuzzyIgnore holds order-phrasing words that sit within edit distance
// of catalog entries ("need" vs "neem") and must never fuzzy-match.
// Exact and alias matches are unaffected.
var fuzzyIgnore = map[string]bool{
	"need": true, "want": true, "order": true, "supply": true,
	"send": true, "ship": true, "deliver": true, "delivery": true,
}

// MatchProduct finds the product mentioned in free text. Exact word
// matches on the key, display name or an alias win; otherwise each word
// of the text is fuzzy-matched against the vocabulary to recover typos
// like "ashwaganda".
func (c *Catalog) MatchProduct(text string) (*Product, bool) {
	for i := range c.Products {
		p := &c.Products[i]
		if match.ContainsWord(text, p.Key) || match.ContainsWord(text, p.Name) {
			return p, true
		}
		for _, a := range p.Aliases {
			if match.ContainsWord(text, a) {
				return p, true
			}
		}
	}
	vocab, owner := c.productVocab()
	for _, w := range match.Words(text) {
		if len(w) < 4 || fuzzyIgnore[w] {
			continue
		}
		if hit := match.Closest(w, vocab, match.DefaultCutoff); hit != "" {
			return owner[hit], true
		}
	}
	return nil, false
}

func (c *Catalog) productVocab() ([]string, map[string]*Product) {
	var vocab []string
	owner := map[string]*Product{}
	for i := range c.Products {
		p := &c.Products[i]
		vocab = append(vocab, p.Key)
		owner[p.Key] = p
		for _, a := range p.Aliases {
			vocab = append(vocab, a)
			owner[a] = p
		}
	}
	return vocab, owner
}

// MatchGrade finds a grade keyword or alias in free text.
func (c *Catalog) MatchGrade(text string) (Grade, bool) {
	for _, g := range c.Grades {
		if match.ContainsWord(text, g.Key) {
			return g, true
		}
		for _, a := range g.Aliases {
			if match.ContainsWord(text, a) {
				return g, true
			}
		}
	}
	for _, g := range c.Grades {
		for _, w := range match.Words(text) {
			if len(w) >= 4 && !fuzzyIgnore[w] && match.Similarity(w, g.Key) >= match.DefaultCutoff {
				return g, true
			}
		}
	}
	return Grade{}, false
}

// MatchCity finds a delivery city or alias in free text.
func (c *Catalog) MatchCity(text string) (City, bool) {
	for _, ct := range c.Cities {
		if match.ContainsWord(text, ct.Key) {
			return ct, true
		}
		for _, a := range ct.Aliases {
			if match.ContainsWord(text, a) {
				return ct, true
			}
		}
	}
	for _, ct := range c.Cities {
		for _, w := range match.Words(text) {
			if len(w) >= 4 && !fuzzyIgnore[w] && match.Similarity(w, ct.Key) >= match.DefaultCutoff {
				return ct, true
			}
		}
	}
	return City{}, false
}

// VolumeDiscount returns the discount tier a quantity falls into. Ties
// resolve to the highest qualifying tier; below the lowest threshold the
// discount is zero.
func (c *Catalog) VolumeDiscount(quantityKg int) DiscountTier {
	best := DiscountTier{}
	for _, t := range c.Tiers {
		if quantityKg >= t.MinKg && t.MinKg >= best.MinKg {
			best = t
		}
	}
	return best
}
