package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
)

var (
	kgRe   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:kgs?|kilograms?|kilos?)\b`)
	tonRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:tonnes?|tons?)\b`)
	verbRe = regexp.MustCompile(`(?i)\b(?:for|need|want|order|supply)\s+(\d+)\b`)
	bareRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
	specRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:%|percent\b|concentration\b)`)

	bareNumberRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*$`)
)

// Rules is the rule-based strategy: tokenization plus lookup against the
// catalog-derived vocabulary. It is also the fallback when the model
// strategy is unavailable, so it must handle every turn on its own.
type Rules struct {
	cat *catalog.Catalog
}

func NewRules(cat *catalog.Catalog) *Rules {
	return &Rules{cat: cat}
}

func (r *Rules) Extract(_ context.Context, text string, prior Delta) (Delta, error) {
	var d Delta

	if p, ok := r.cat.MatchProduct(text); ok {
		d.Product = p.Key
	}

	if kg, ok := r.quantity(text, prior); ok {
		d.QuantityKg = kg
	}

	if m := specRe.FindStringSubmatch(text); m != nil {
		product := d.Product
		if product == "" {
			product = prior.Product
		}
		d.Specification = r.canonicalSpec(m[1], product)
	}

	if g, ok := r.cat.MatchGrade(text); ok {
		d.Grade = g.Key
	}

	if c, ok := r.cat.MatchCity(text); ok {
		d.City = c.Key
	}

	return d, nil
}

func (r *Rules) quantity(text string, prior Delta) (int, bool) {
	if m := kgRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := tonRe.FindStringSubmatch(text); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(f * 1000), true
		}
	}
	// "need 75" style, but not "need 5%" — the number must not belong to
	// a specification token.
	if loc := verbRe.FindStringSubmatchIndex(text); loc != nil {
		end := loc[3]
		rest := strings.TrimLeft(text[end:], " ")
		if !strings.HasPrefix(rest, "%") &&
			!hasFoldPrefix(rest, "percent") && !hasFoldPrefix(rest, "concentration") {
			if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil {
				return n, true
			}
		}
	}
	// A bare number fills the quantity only while none is collected;
	// once 50kg is on the order, a lone "5" answering a specification
	// prompt must not clobber it.
	if prior.QuantityKg == 0 {
		if m := bareRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// canonicalSpec normalizes a raw percentage to the catalog's label form,
// snapping to the product's offered specification when the numeric value
// matches (so "5" and "5.0" both land on "5%").
func (r *Rules) canonicalSpec(number, productKey string) string {
	label := trimNumber(number) + "%"
	if productKey == "" {
		return label
	}
	p, ok := r.cat.Product(productKey)
	if !ok {
		return label
	}
	for _, s := range p.Specs {
		if strings.TrimSuffix(s.Label, "%") == trimNumber(number) {
			return s.Label
		}
	}
	return label
}

func trimNumber(n string) string {
	if strings.Contains(n, ".") {
		n = strings.TrimRight(n, "0")
		n = strings.TrimSuffix(n, ".")
	}
	return n
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
