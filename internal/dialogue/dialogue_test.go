package dialogue

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
	"github.com/alchemy-chemicals/quotebot/internal/extract"
	"github.com/shopspring/decimal"
)

func newTestConversation(t *testing.T) *Conversation {
	t.Helper()
	cat := catalog.Default()
	ext := extract.New(nil, extract.NewRules(cat), 0, slog.Default())
	return NewConversation(cat, ext, slog.Default())
}

func turn(t *testing.T, c *Conversation, text string) Reply {
	t.Helper()
	r, err := c.Turn(context.Background(), text)
	if err != nil {
		t.Fatalf("Turn(%q): %v", text, err)
	}
	return r
}

func TestEndToEndScenario(t *testing.T) {
	c := newTestConversation(t)

	if r := turn(t, c, "Hi"); r.Kind != ReplyGreeting {
		t.Fatalf("greeting turn = %v, want greeting", r.Kind)
	}

	steps := []struct {
		text string
		next Slot
	}{
		{"Ashwagandha", SlotSpecification},
		{"5%", SlotQuantity},
		{"50kg", SlotGrade},
		{"pharmaceutical", SlotCity},
	}
	for _, s := range steps {
		r := turn(t, c, s.text)
		if r.Kind != ReplyPrompt {
			t.Fatalf("turn %q = %v, want prompt", s.text, r.Kind)
		}
		if r.NextSlot != s.next {
			t.Errorf("turn %q prompts for %s, want %s", s.text, r.NextSlot, s.next)
		}
	}

	r := turn(t, c, "Mumbai")
	if r.Kind != ReplyQuote {
		t.Fatalf("final turn = %v, want quote", r.Kind)
	}
	if c.State() != StateComplete {
		t.Errorf("state = %v, want complete", c.State())
	}

	want := Order{Product: "ashwagandha", Specification: "5%", QuantityKg: 50, Grade: "pharmaceutical", City: "mumbai"}
	if c.Order() != want {
		t.Errorf("order = %+v, want %+v", c.Order(), want)
	}

	q := r.Quote
	if !q.DeliveryCost.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("delivery cost = %s, want 3500", q.DeliveryCost)
	}
	taxable := q.Subtotal.Add(q.DeliveryCost)
	if !q.TaxAmount.Equal(taxable.Mul(decimal.RequireFromString("0.18"))) {
		t.Errorf("tax %s is not 18%% of %s", q.TaxAmount, taxable)
	}
}

func TestOrderIndependence(t *testing.T) {
	permutations := [][]string{
		{"Ashwagandha", "5%", "50kg", "pharmaceutical", "Mumbai"},
		{"Mumbai delivery", "pharmaceutical grade", "50kg", "5%", "Ashwagandha"},
		{"50kg ashwagandha", "pharmaceutical, Mumbai", "5%"},
		{"50kg Ashwagandha 5% pharmaceutical Mumbai"},
	}

	var quotes []string
	for _, turns := range permutations {
		c := newTestConversation(t)
		var last Reply
		for _, text := range turns {
			last = turn(t, c, text)
		}
		if last.Kind != ReplyQuote {
			t.Fatalf("turns %v ended with %v, want quote", turns, last.Kind)
		}
		quotes = append(quotes, last.Quote.Total.String())

		want := Order{Product: "ashwagandha", Specification: "5%", QuantityKg: 50, Grade: "pharmaceutical", City: "mumbai"}
		if c.Order() != want {
			t.Errorf("turns %v produced order %+v, want %+v", turns, c.Order(), want)
		}
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i] != quotes[0] {
			t.Errorf("permutation %d total %s differs from %s", i, quotes[i], quotes[0])
		}
	}
}

func TestNonErasure(t *testing.T) {
	c := newTestConversation(t)
	turn(t, c, "100kg of neem")

	// A turn carrying no quantity signal must leave the quantity alone.
	turn(t, c, "cosmetic grade")
	if got := c.Order().QuantityKg; got != 100 {
		t.Errorf("quantity = %d after unrelated turn, want 100", got)
	}
	if got := c.Order().Product; got != "neem" {
		t.Errorf("product = %q after unrelated turn, want neem", got)
	}

	// An unrecognized turn must not erase anything either.
	turn(t, c, "hmm let me think")
	if got := c.Order().QuantityKg; got != 100 {
		t.Errorf("quantity = %d after unrecognized turn, want 100", got)
	}

	// Only an explicit new value replaces.
	turn(t, c, "make it 150kg")
	if got := c.Order().QuantityKg; got != 150 {
		t.Errorf("quantity = %d after revision, want 150", got)
	}
}

func TestBareNumberAnswerKeepsQuantity(t *testing.T) {
	c := newTestConversation(t)

	r := turn(t, c, "50kg ashwagandha pharmaceutical mumbai")
	if r.Kind != ReplyPrompt || r.NextSlot != SlotSpecification {
		t.Fatalf("turn = %v/%s, want prompt for specification", r.Kind, r.NextSlot)
	}

	// A lone "5" while the machine is asking for a concentration must not
	// overwrite the 50kg already on the order.
	turn(t, c, "5")
	if got := c.Order().QuantityKg; got != 50 {
		t.Fatalf("quantity = %d after bare-number turn, want 50", got)
	}

	if r := turn(t, c, "5%"); r.Kind != ReplyQuote {
		t.Errorf("spec turn = %v, want quote", r.Kind)
	}
}

func TestResetAtomicity(t *testing.T) {
	c := newTestConversation(t)
	turn(t, c, "50kg Ashwagandha 5% pharmaceutical Mumbai")
	if c.State() != StateComplete {
		t.Fatalf("state = %v, want complete", c.State())
	}

	r := turn(t, c, "hello")
	if r.Kind != ReplyGreeting {
		t.Fatalf("greeting turn = %v, want greeting", r.Kind)
	}
	if c.Order() != (Order{}) {
		t.Errorf("order = %+v after reset, want empty", c.Order())
	}
	if _, ok := c.Quote(); ok {
		t.Error("quote survived reset")
	}
	if c.State() != StateEmpty {
		t.Errorf("state = %v after reset, want empty", c.State())
	}
}

func TestDelhiIsACityNotAGreeting(t *testing.T) {
	c := newTestConversation(t)
	turn(t, c, "50kg Ashwagandha 5% pharmaceutical")

	r := turn(t, c, "deliver to Delhi")
	if r.Kind != ReplyQuote {
		t.Fatalf("delhi turn = %v, want quote", r.Kind)
	}
	if got := c.Order().City; got != "delhi" {
		t.Errorf("city = %q, want delhi", got)
	}
}

func TestValidationSpecNotOffered(t *testing.T) {
	c := newTestConversation(t)
	turn(t, c, "ashwagandha")

	r := turn(t, c, "65%")
	if r.Kind != ReplyClarification {
		t.Fatalf("turn = %v, want clarification", r.Kind)
	}
	if r.Field != SlotSpecification {
		t.Errorf("field = %s, want specification", r.Field)
	}
	// The bad specification is re-collected; the product survives.
	if got := c.Order().Product; got != "ashwagandha" {
		t.Errorf("product = %q after clarification, want ashwagandha", got)
	}
	if got := c.Order().Specification; got != "" {
		t.Errorf("specification = %q after clarification, want empty", got)
	}

	if r := turn(t, c, "10%"); r.Kind != ReplyPrompt || r.NextSlot != SlotQuantity {
		t.Errorf("recovery turn = %v/%s, want prompt for quantity", r.Kind, r.NextSlot)
	}
}

func TestValidationBelowMinimumOrder(t *testing.T) {
	c := newTestConversation(t)

	r := turn(t, c, "10kg ashwagandha 5%")
	if r.Kind != ReplyClarification {
		t.Fatalf("turn = %v, want clarification", r.Kind)
	}
	if r.Field != SlotQuantity {
		t.Errorf("field = %s, want quantity", r.Field)
	}
	if got := c.Order().Product; got != "ashwagandha" {
		t.Errorf("product = %q, want ashwagandha", got)
	}

	r = turn(t, c, "ok 25kg then")
	if r.Kind != ReplyPrompt || r.NextSlot != SlotGrade {
		t.Errorf("recovery turn = %v/%s, want prompt for grade", r.Kind, r.NextSlot)
	}
}

func TestRevisionAfterCompleteReprices(t *testing.T) {
	c := newTestConversation(t)
	first := turn(t, c, "50kg Ashwagandha 5% pharmaceutical Mumbai")
	if first.Kind != ReplyQuote {
		t.Fatalf("turn = %v, want quote", first.Kind)
	}

	revised := turn(t, c, "make that 500kg")
	if revised.Kind != ReplyQuote {
		t.Fatalf("revision turn = %v, want fresh quote", revised.Kind)
	}
	if revised.Quote.Total.Equal(first.Quote.Total) {
		t.Error("revised total should differ from the original")
	}
	if got := c.Order().QuantityKg; got != 500 {
		t.Errorf("quantity = %d, want 500", got)
	}

	// Same context asked again yields the identical quote (idempotent).
	again := turn(t, c, "thanks, can you repeat that")
	if again.Kind != ReplyQuote {
		t.Fatalf("follow-up turn = %v, want quote", again.Kind)
	}
	if !again.Quote.Total.Equal(revised.Quote.Total) {
		t.Errorf("follow-up total %s differs from %s", again.Quote.Total, revised.Quote.Total)
	}
}
