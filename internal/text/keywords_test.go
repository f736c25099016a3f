package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords(""))
	})

	t.Run("Frequency Order", func(t *testing.T) {
		got := ExtractKeywords("pricing pricing pricing budget budget invoice")
		assert.Equal(t, []string{"pricing", "budget", "invoice"}, got)
	})

	t.Run("Ties Broken By First Occurrence", func(t *testing.T) {
		got := ExtractKeywords("zebra apple zebra apple")
		assert.Equal(t, []string{"zebra", "apple"}, got)
	})

	t.Run("Short Tokens Dropped", func(t *testing.T) {
		got := ExtractKeywords("the cat sat on a big red mat unit")
		assert.NotContains(t, got, "cat")
		assert.NotContains(t, got, "mat")
		// Length 4 is the first length that survives.
		assert.Contains(t, got, "unit")
	})

	t.Run("Stopwords Dropped", func(t *testing.T) {
		got := ExtractKeywords("this that these those with pricing")
		assert.Equal(t, []string{"pricing"}, got)
	})

	t.Run("Punctuation And Case Normalised", func(t *testing.T) {
		got := ExtractKeywords("Pricing, PRICING! pricing? budget-friendly")
		assert.Contains(t, got, "pricing")
		assert.Contains(t, got, "budget")
		assert.Contains(t, got, "friendly")
	})

	t.Run("Capped At Ten", func(t *testing.T) {
		input := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima"
		got := ExtractKeywords(input)
		assert.Len(t, got, 10)
	})

	t.Run("Deterministic", func(t *testing.T) {
		input := "growth revenue growth margin revenue churn margin retention churn growth"
		first := ExtractKeywords(input)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, ExtractKeywords(input))
		}
	})
}
