package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordOverlap(t *testing.T) {
	t.Run("all terms present", func(t *testing.T) {
		score := KeywordOverlap("diabetes insulin", "Patient has diabetes and takes insulin daily.")
		assert.Equal(t, 1.0, score)
	})

	t.Run("partial overlap", func(t *testing.T) {
		score := KeywordOverlap("diabetes warfarin", "Patient has diabetes.")
		assert.Equal(t, 0.5, score)
	})

	t.Run("no overlap", func(t *testing.T) {
		score := KeywordOverlap("asthma", "Patient has hypertension.")
		assert.Equal(t, 0.0, score)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, 0.0, KeywordOverlap("", "Patient has hypertension."))
		assert.Equal(t, 0.0, KeywordOverlap("   ", "Patient has hypertension."))
	})

	t.Run("case insensitive", func(t *testing.T) {
		score := KeywordOverlap("DIABETES", "patient has Diabetes")
		assert.Equal(t, 1.0, score)
	})

	t.Run("duplicate terms collapse", func(t *testing.T) {
		score := KeywordOverlap("diabetes diabetes warfarin", "Patient has diabetes.")
		assert.Equal(t, 0.5, score)
	})

	t.Run("partial word matches count", func(t *testing.T) {
		score := KeywordOverlap("diabet", "Patient is diabetic.")
		assert.Equal(t, 1.0, score)
	})

	t.Run("score stays in range", func(t *testing.T) {
		score := KeywordOverlap("what medications does patient one take", "Patient 1 takes metformin.")
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})
}
