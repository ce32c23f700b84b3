package match

import "testing"

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{"exact", "hi", "hi", true},
		{"leading", "hi there", "hi", true},
		{"trailing", "oh hi", "hi", true},
		{"punctuated", "hi, I need a quote", "hi", true},
		{"case insensitive", "Hello Team", "hello", true},
		{"multi word phrase", "good morning to you", "good morning", true},
		{"embedded in city", "deliver to delhi", "hi", false},
		{"embedded in word", "this is high", "hi", false},
		{"embedded both sides", "chichi", "hi", false},
		{"abuts multibyte letter", "éhi", "hi", false},
		{"multibyte neighbour word", "नमस्ते hi", "hi", true},
		{"empty phrase", "anything", "", false},
		{"absent", "ashwagandha 5%", "hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsWord(tt.text, tt.phrase); got != tt.want {
				t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"ashwagandha", "ashwagandha", 1, 1},
		{"ashwaganda", "ashwagandha", 0.85, 1},
		{"Bangalore", "banglore", 0.85, 1},
		{"neem", "tulsi", 0, 0.3},
		{"", "", 0, 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("Similarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"mumbai", "delhi", "bangalore", "pune", "ujjain"}

	tests := []struct {
		input string
		want  string
	}{
		{"mumbay", "mumbai"},
		{"banglore", "bangalore"},
		{"dilhi", "delhi"},
		{"zzzzzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Closest(tt.input, candidates, DefaultCutoff); got != tt.want {
				t.Errorf("Closest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
