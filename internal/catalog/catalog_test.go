package catalog

import "testing"

func TestMatchProduct(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"exact key", "I need ashwagandha", "ashwagandha", true},
		{"display name", "quote for Curcumin Extract please", "curcumin", true},
		{"alias", "price for turmeric", "curcumin", true},
		{"typo via alias", "ashwaganda 5%", "ashwagandha", true},
		{"typo via fuzzy", "ashwagandhaa please", "ashwagandha", true},
		{"multi word alias", "holy basil extract", "tulsi", true},
		{"no product", "50kg to mumbai", "", false},
		{"need is not neem", "I need 50kg", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := c.MatchProduct(tt.text)
			if ok != tt.found {
				t.Fatalf("MatchProduct(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && p.Key != tt.want {
				t.Errorf("MatchProduct(%q) = %q, want %q", tt.text, p.Key, tt.want)
			}
		})
	}
}

func TestMatchCity(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"plain", "deliver to mumbai", "mumbai", true},
		{"alias bombay", "ship it to Bombay", "mumbai", true},
		{"alias bengaluru", "Bengaluru office", "bangalore", true},
		{"typo", "delivery to banglore", "bangalore", true},
		{"local pickup", "we will pickup", "local", true},
		{"no city", "ashwagandha 5%", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, ok := c.MatchCity(tt.text)
			if ok != tt.found {
				t.Fatalf("MatchCity(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && city.Key != tt.want {
				t.Errorf("MatchCity(%q) = %q, want %q", tt.text, city.Key, tt.want)
			}
		})
	}
}

func TestMatchGrade(t *testing.T) {
	c := Default()

	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"pharmaceutical grade", "pharmaceutical", true},
		{"pharma please", "pharmaceutical", true},
		{"cometic", "cosmetic", true},
		{"food grade", "food", true},
		{"for dietary use", "food", true},
		{"50kg mumbai", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			g, ok := c.MatchGrade(tt.text)
			if ok != tt.found {
				t.Fatalf("MatchGrade(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && g.Key != tt.want {
				t.Errorf("MatchGrade(%q) = %q, want %q", tt.text, g.Key, tt.want)
			}
		})
	}
}

func TestVolumeDiscount(t *testing.T) {
	c := Default()

	tests := []struct {
		kg   int
		want int64
	}{
		{1, 0},
		{24, 0},
		{25, 10},
		{99, 10},
		{100, 15},
		{499, 15},
		{500, 20},
		{5000, 20},
	}
	for _, tt := range tests {
		if got := c.VolumeDiscount(tt.kg); got.DiscountPct != tt.want {
			t.Errorf("VolumeDiscount(%d) = %d%%, want %d%%", tt.kg, got.DiscountPct, tt.want)
		}
	}
}

func TestProductSpecLookup(t *testing.T) {
	c := Default()
	p, ok := c.Product("ashwagandha")
	if !ok {
		t.Fatal("ashwagandha missing from default catalog")
	}
	s, ok := p.Spec("5%")
	if !ok {
		t.Fatal("5% spec missing")
	}
	if s.MinOrderKg != 25 {
		t.Errorf("MinOrderKg = %d, want 25", s.MinOrderKg)
	}
	if s.BasePrice.String() != "2800" {
		t.Errorf("BasePrice = %s, want 2800", s.BasePrice)
	}
	if _, ok := p.Spec("65%"); ok {
		t.Error("ashwagandha should not offer 65%")
	}
}
