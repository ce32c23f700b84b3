package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
)

type failingGenerator struct{ err error }

func (f failingGenerator) GenerateJSON(context.Context, string) (json.RawMessage, error) {
	return nil, f.err
}

type cannedGenerator struct{ reply string }

func (c cannedGenerator) GenerateJSON(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(c.reply), nil
}

func TestFallbackEquivalence(t *testing.T) {
	cat := catalog.Default()
	logger := slog.Default()
	text := "75kg Tulsi 5% cosmetic grade deliver to Pune"

	rulesOnly := New(nil, NewRules(cat), 0, logger)
	wantDelta, err := rulesOnly.Extract(context.Background(), text, Delta{})
	if err != nil {
		t.Fatalf("rules extract: %v", err)
	}

	failures := []JSONGenerator{
		failingGenerator{err: errors.New("service unreachable")},
		cannedGenerator{reply: `not json at all`},
	}
	for _, gen := range failures {
		model := NewModel(gen, cat, logger)
		dispatcher := New(model, NewRules(cat), 0, logger)

		got, err := dispatcher.Extract(context.Background(), text, Delta{})
		if err != nil {
			t.Fatalf("dispatcher extract: %v", err)
		}
		if got != wantDelta {
			t.Errorf("fallback delta = %+v, want %+v", got, wantDelta)
		}
	}
}

func TestModelParseCanonicalizes(t *testing.T) {
	cat := catalog.Default()
	model := NewModel(nil, cat, slog.Default())

	tests := []struct {
		name  string
		raw   string
		prior Delta
		want  Delta
	}{
		{
			name: "clean reply",
			raw:  `{"product":"ashwagandha","specification":"5%","quantity_kg":50,"grade":"pharmaceutical","city":"mumbai"}`,
			want: Delta{Product: "ashwagandha", Specification: "5%", QuantityKg: 50, Grade: "pharmaceutical", City: "mumbai"},
		},
		{
			name: "aliases and bare numbers",
			raw:  `{"product":"turmeric","specification":"95","grade":"pharma","city":"bombay"}`,
			want: Delta{Product: "curcumin", Specification: "95%", Grade: "pharmaceutical", City: "mumbai"},
		},
		{
			name: "partial with nulls",
			raw:  `{"product":null,"specification":null,"quantity_kg":75,"grade":null,"city":null}`,
			want: Delta{QuantityKg: 75},
		},
		{
			name: "hallucinated values dropped",
			raw:  `{"product":"plutonium","grade":"weapons","city":"atlantis"}`,
			want: Delta{},
		},
		{
			name:  "spec snaps using prior product",
			raw:   `{"specification":"2.5"}`,
			prior: Delta{Product: "ashwagandha"},
			want:  Delta{Specification: "2.5%"},
		},
		{
			name: "negative quantity dropped",
			raw:  `{"quantity_kg":-10}`,
			want: Delta{},
		},
		{
			name: "fractional quantity rounds to whole kg",
			raw:  `{"quantity_kg":50.7}`,
			want: Delta{QuantityKg: 51},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.parse(json.RawMessage(tt.raw), tt.prior)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("parse = %+v, want %+v", got, tt.want)
			}
		})
	}
}
