package catalog

import "github.com/shopspring/decimal"

func inr(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Default returns the built-in catalog. It is the source of truth when no
// database is configured and the seed data for deployments that use one.
func Default() *Catalog {
	return &Catalog{
		Products: []Product{
			{
				Key: "ashwagandha", Name: "Ashwagandha Extract", AssayUnit: "Withanolides",
				Aliases: []string{"ashwaganda", "ashvagandha", "ashwagandah"},
				Specs: []Spec{
					{Label: "2.5%", BasePrice: inr(1800), MinOrderKg: 25},
					{Label: "5%", BasePrice: inr(2800), MinOrderKg: 25},
					{Label: "10%", BasePrice: inr(3600), MinOrderKg: 20},
				},
			},
			{
				Key: "boswellia", Name: "Boswellia Extract", AssayUnit: "Boswellic Acid",
				Aliases: []string{"boswelia", "boswella"},
				Specs: []Spec{
					{Label: "65%", BasePrice: inr(2200), MinOrderKg: 25},
					{Label: "85%", BasePrice: inr(3200), MinOrderKg: 20},
				},
			},
			{
				Key: "curcumin", Name: "Curcumin Extract", AssayUnit: "Purity",
				Aliases: []string{"curcumine", "turmeric", "haldi"},
				Specs: []Spec{
					{Label: "90%", BasePrice: inr(2500), MinOrderKg: 25},
					{Label: "95%", BasePrice: inr(3000), MinOrderKg: 25},
					{Label: "98%", BasePrice: inr(3800), MinOrderKg: 20},
				},
			},
			{
				Key: "neem", Name: "Neem Extract", AssayUnit: "Azadirachtin",
				Aliases: []string{"nim", "neam"},
				Specs: []Spec{
					{Label: "1%", BasePrice: inr(1500), MinOrderKg: 30},
					{Label: "5%", BasePrice: inr(2600), MinOrderKg: 25},
				},
			},
			{
				Key: "tulsi", Name: "Tulsi Extract", AssayUnit: "Ursolic Acid",
				Aliases: []string{"tulasi", "basil", "holy basil"},
				Specs: []Spec{
					{Label: "2%", BasePrice: inr(1700), MinOrderKg: 30},
					{Label: "5%", BasePrice: inr(2400), MinOrderKg: 25},
				},
			},
		},
		Grades: []Grade{
			{Key: "pharmaceutical", PremiumPct: 20, Aliases: []string{"pharma", "medical", "pharmceutical"}},
			{Key: "cosmetic", PremiumPct: 10, Aliases: []string{"cosmetics", "beauty", "cometic", "cosmatic"}},
			{Key: "food", PremiumPct: 0, Aliases: []string{"food grade", "edible", "dietary"}},
		},
		Cities: []City{
			{Key: "mumbai", DeliveryCost: inr(3500), Aliases: []string{"bombay", "mumbay"}},
			{Key: "delhi", DeliveryCost: inr(4200), Aliases: []string{"new delhi", "dilli"}},
			{Key: "bangalore", DeliveryCost: inr(4800), Aliases: []string{"bengaluru", "banglore", "bangaluru"}},
			{Key: "pune", DeliveryCost: inr(3200), Aliases: []string{"poona"}},
			{Key: "ujjain", DeliveryCost: inr(1000), Aliases: []string{"ujain"}},
			{Key: "local", DeliveryCost: inr(1000), Aliases: []string{"locally", "pickup"}},
		},
		Tiers: []DiscountTier{
			{MinKg: 1, MaxKg: 24, DiscountPct: 0},
			{MinKg: 25, MaxKg: 99, DiscountPct: 10},
			{MinKg: 100, MaxKg: 499, DiscountPct: 15},
			{MinKg: 500, MaxKg: 0, DiscountPct: 20},
		},
		TaxRate: decimal.RequireFromString("0.18"), // GST
	}
}
