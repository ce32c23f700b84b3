// Package pricing turns a fully collected order into an itemized quote.
// Price is a pure function: the same order against the same catalog
// always yields an identical quote. All arithmetic runs on decimals;
// rounding to paise happens only when a quote is rendered.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
)

// Order is the validated slot set pricing runs on. Callers guarantee the
// keys resolve against the catalog; a miss here is a programmer error.
type Order struct {
	Product       string
	Specification string
	QuantityKg    int
	Grade         string
	City          string
}

// Quote is the immutable pricing result. Field order mirrors the
// line-item contract: base, discount, premium, subtotal, delivery, tax,
// total.
type Quote struct {
	ProductName   string `json:"product_name"`
	Specification string `json:"specification"`
	AssayUnit     string `json:"assay_unit"`
	Grade         string `json:"grade"`
	QuantityKg    int    `json:"quantity_kg"`
	City          string `json:"city"`
	MinOrderKg    int    `json:"min_order_kg"`

	UnitPrice      decimal.Decimal `json:"unit_price"`
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountPct    decimal.Decimal `json:"volume_discount_pct"`
	DiscountTier   string          `json:"volume_tier"`
	DiscountAmount decimal.Decimal `json:"volume_discount_amount"`
	PremiumPct     decimal.Decimal `json:"grade_premium_pct"`
	PremiumAmount  decimal.Decimal `json:"grade_premium_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCost   decimal.Decimal `json:"delivery_cost"`
	TaxPct         decimal.Decimal `json:"tax_pct"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// Price computes the quote for a complete order.
//
//	base     = unit price x quantity
//	subtotal = base x (1 - discount) x (1 + premium)
//	tax      = (subtotal + delivery) x rate
//	total    = subtotal + delivery + tax
func Price(order Order, cat *catalog.Catalog) (Quote, error) {
	product, ok := cat.Product(order.Product)
	if !ok {
		return Quote{}, fmt.Errorf("price: unknown product %q", order.Product)
	}
	spec, ok := product.Spec(order.Specification)
	if !ok {
		return Quote{}, fmt.Errorf("price: product %q has no specification %q", order.Product, order.Specification)
	}
	grade, ok := cat.Grade(order.Grade)
	if !ok {
		return Quote{}, fmt.Errorf("price: unknown grade %q", order.Grade)
	}
	city, ok := cat.City(order.City)
	if !ok {
		return Quote{}, fmt.Errorf("price: unknown city %q", order.City)
	}
	if order.QuantityKg <= 0 {
		return Quote{}, fmt.Errorf("price: non-positive quantity %d", order.QuantityKg)
	}

	quantity := decimal.NewFromInt(int64(order.QuantityKg))
	base := spec.BasePrice.Mul(quantity)

	tier := cat.VolumeDiscount(order.QuantityKg)
	discountPct := decimal.NewFromInt(tier.DiscountPct)
	premiumPct := decimal.NewFromInt(grade.PremiumPct)

	afterDiscount := base.Mul(decimal.NewFromInt(1).Sub(discountPct.Div(hundred)))
	subtotal := afterDiscount.Mul(decimal.NewFromInt(1).Add(premiumPct.Div(hundred)))

	tax := subtotal.Add(city.DeliveryCost).Mul(cat.TaxRate)
	total := subtotal.Add(city.DeliveryCost).Add(tax)

	return Quote{
		ProductName:   product.Name,
		Specification: spec.Label,
		AssayUnit:     product.AssayUnit,
		Grade:         grade.Key,
		QuantityKg:    order.QuantityKg,
		City:          city.Key,
		MinOrderKg:    spec.MinOrderKg,

		UnitPrice:      spec.BasePrice,
		BasePrice:      base,
		DiscountPct:    discountPct,
		DiscountTier:   tierLabel(tier),
		DiscountAmount: base.Sub(afterDiscount),
		PremiumPct:     premiumPct,
		PremiumAmount:  subtotal.Sub(afterDiscount),
		Subtotal:       subtotal,
		DeliveryCost:   city.DeliveryCost,
		TaxPct:         cat.TaxRate.Mul(hundred),
		TaxAmount:      tax,
		Total:          total,
	}, nil
}

func tierLabel(t catalog.DiscountTier) string {
	if t.MinKg == 0 {
		return "no discount"
	}
	if t.MaxKg == 0 {
		return fmt.Sprintf("%d+kg", t.MinKg)
	}
	return fmt.Sprintf("%d-%dkg", t.MinKg, t.MaxKg)
}
