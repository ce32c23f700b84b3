// Package compose renders the dialogue manager's replies as plain text.
// It is the only place user-facing wording lives; the manager and the
// pricing engine emit data, never prose.
package compose

import (
	"fmt"
	"strings"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
	"github.com/alchemy-chemicals/quotebot/internal/dialogue"
	"github.com/alchemy-chemicals/quotebot/internal/pricing"
)

// Composer formats replies against a catalog (for listings and prompts).
type Composer struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Composer {
	return &Composer{cat: cat}
}

// Render turns a Reply into the assistant's message for the turn.
func (c *Composer) Render(r dialogue.Reply) string {
	switch r.Kind {
	case dialogue.ReplyGreeting:
		return c.greeting()
	case dialogue.ReplyPrompt:
		return c.prompt(r)
	case dialogue.ReplyClarification:
		return fmt.Sprintf("Sorry, that does not work: %s. %s", r.Reason, c.ask(r.Field, r.Known))
	case dialogue.ReplyQuote:
		return QuoteText(*r.Quote)
	default:
		return "I did not catch any order details there. You can name a product, a quantity like 50kg, a concentration like 5%, a grade, or a delivery city."
	}
}

func (c *Composer) greeting() string {
	var b strings.Builder
	b.WriteString("Welcome to Alchemy Chemicals! I can prepare an instant quotation for our herbal extracts.\n\nOur products:\n")
	for _, p := range c.cat.Products {
		fmt.Fprintf(&b, "  - %s (%s): %s\n", p.Name, p.AssayUnit, strings.Join(p.SpecLabels(), ", "))
	}
	b.WriteString("\nTell me what you need, for example: \"50kg Ashwagandha 5%, pharmaceutical grade, delivery to Mumbai\".")
	return b.String()
}

func (c *Composer) prompt(r dialogue.Reply) string {
	ack := c.acknowledge(r.Known)
	ask := c.ask(r.NextSlot, r.Known)
	if ack == "" {
		return ask
	}
	return fmt.Sprintf("Noted: %s. %s", ack, ask)
}

func (c *Composer) acknowledge(o dialogue.Order) string {
	var parts []string
	if o.Product != "" {
		if p, ok := c.cat.Product(o.Product); ok {
			parts = append(parts, p.Name)
		}
	}
	if o.Specification != "" {
		parts = append(parts, o.Specification)
	}
	if o.QuantityKg > 0 {
		parts = append(parts, fmt.Sprintf("%dkg", o.QuantityKg))
	}
	if o.Grade != "" {
		parts = append(parts, o.Grade+" grade")
	}
	if o.City != "" {
		parts = append(parts, "delivery to "+title(o.City))
	}
	return strings.Join(parts, ", ")
}

func (c *Composer) ask(slot dialogue.Slot, o dialogue.Order) string {
	switch slot {
	case dialogue.SlotProduct:
		var names []string
		for _, p := range c.cat.Products {
			names = append(names, p.Name)
		}
		return "Which product would you like? We carry " + strings.Join(names, ", ") + "."
	case dialogue.SlotSpecification:
		if p, ok := c.cat.Product(o.Product); ok {
			return fmt.Sprintf("Which concentration of %s? We offer %s.", p.Name, strings.Join(p.SpecLabels(), ", "))
		}
		return "Which concentration do you need?"
	case dialogue.SlotQuantity:
		return "How many kilograms do you need?"
	case dialogue.SlotGrade:
		var grades []string
		for _, g := range c.cat.Grades {
			grades = append(grades, g.Key)
		}
		return "Which grade? We supply " + strings.Join(grades, ", ") + "."
	case dialogue.SlotCity:
		var cities []string
		for _, ct := range c.cat.Cities {
			cities = append(cities, title(ct.Key))
		}
		return "Where should we deliver? Options: " + strings.Join(cities, ", ") + "."
	}
	return "Could you tell me a bit more about your order?"
}

// QuoteText renders the line-itemized quotation: base, discount, premium,
// subtotal, delivery, tax, total. This is the export format as well.
func QuoteText(q pricing.Quote) string {
	var b strings.Builder
	b.WriteString("ALCHEMY CHEMICALS - QUOTATION\n")
	b.WriteString("-----------------------------\n")
	fmt.Fprintf(&b, "Product:        %s\n", q.ProductName)
	fmt.Fprintf(&b, "Specification:  %s %s\n", q.Specification, q.AssayUnit)
	fmt.Fprintf(&b, "Grade:          %s\n", title(q.Grade))
	fmt.Fprintf(&b, "Quantity:       %dkg\n", q.QuantityKg)
	fmt.Fprintf(&b, "Delivery:       %s\n", title(q.City))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Base price (%s/kg x %dkg):  INR %s\n", q.UnitPrice.StringFixed(2), q.QuantityKg, q.BasePrice.StringFixed(2))
	fmt.Fprintf(&b, "Volume discount (%s%%, %s):  -INR %s\n", q.DiscountPct, q.DiscountTier, q.DiscountAmount.StringFixed(2))
	fmt.Fprintf(&b, "Grade premium (%s%%):  +INR %s\n", q.PremiumPct, q.PremiumAmount.StringFixed(2))
	fmt.Fprintf(&b, "Subtotal:  INR %s\n", q.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Delivery:  INR %s\n", q.DeliveryCost.StringFixed(2))
	fmt.Fprintf(&b, "GST (%s%%):  INR %s\n", q.TaxPct, q.TaxAmount.StringFixed(2))
	fmt.Fprintf(&b, "TOTAL:  INR %s\n", q.Total.StringFixed(2))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Minimum order: %dkg. Lead time: 2-3 days. Quote valid 7 days.\n", q.MinOrderKg)
	return b.String()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
