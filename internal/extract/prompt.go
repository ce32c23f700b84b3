package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alchemy-chemicals/quotebot/internal/catalog"
)

const extractionPrompt = `You are parsing one customer message in an ongoing quotation conversation for herbal extracts. Extract any order fields the message mentions.

Known products (with offered concentrations):
%s

Known grades: %s
Known delivery cities: %s

Order context collected so far:
%s

Customer message: %q

Respond with valid JSON matching this schema:
{
  "product": "one of the known product keys, or null",
  "specification": "concentration like \"5%%\", or null",
  "quantity_kg": number of kilograms, or null,
  "grade": "one of the known grade keys, or null",
  "city": "one of the known city keys, or null"
}

Rules:
- Only include a field when the message actually mentions it. Never guess from the context.
- Handle spelling mistakes ("cometic" means cosmetic, "delli" means delhi, "ashwaganda" means ashwagandha).
- Convert tonnes to kilograms.
- Return ONLY the JSON object, no markdown fences or other text.`

func buildPrompt(text string, prior Delta, cat *catalog.Catalog) string {
	var products strings.Builder
	for _, p := range cat.Products {
		fmt.Fprintf(&products, "- %s (%s): %s\n", p.Key, p.Name, strings.Join(p.SpecLabels(), ", "))
	}

	var grades, cities []string
	for _, g := range cat.Grades {
		grades = append(grades, g.Key)
	}
	for _, c := range cat.Cities {
		cities = append(cities, c.Key)
	}

	context := "nothing yet"
	if !prior.Empty() {
		if b, err := json.Marshal(prior); err == nil {
			context = string(b)
		}
	}

	return fmt.Sprintf(extractionPrompt,
		strings.TrimRight(products.String(), "\n"),
		strings.Join(grades, ", "),
		strings.Join(cities, ", "),
		context,
		text,
	)
}
