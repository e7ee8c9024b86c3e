package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("strips tagged sections with content", func(t *testing.T) {
		assert.Equal(t, "Actual answer.", Sanitize("<think>leak</think>Actual answer."))
	})

	t.Run("strips stray tags", func(t *testing.T) {
		assert.Equal(t, "The patient takes metformin.", Sanitize("<answer>The patient takes metformin."))
	})

	t.Run("strips code fences", func(t *testing.T) {
		got := Sanitize("The patient takes metformin. ```json\n{\"x\": 1}\n``` And insulin at night.")
		assert.Equal(t, "The patient takes metformin. And insulin at night.", got)
	})

	t.Run("strips unterminated trailing fence", func(t *testing.T) {
		got := Sanitize("The patient takes metformin. ```python\nprint(1)")
		assert.Equal(t, "The patient takes metformin.", got)
	})

	t.Run("strips leaked patient data bullets", func(t *testing.T) {
		raw := "Patient 1 has the following conditions:\n- Diabetes\n- Hypertension\nThey are managed with medication."
		got := Sanitize(raw)
		assert.NotContains(t, got, "Diabetes")
		assert.Contains(t, got, "managed with medication")
	})

	t.Run("strips meta commentary", func(t *testing.T) {
		got := Sanitize("The patient is recovering well. Let me know if this meets your needs.")
		assert.Equal(t, "The patient is recovering well.", got)
	})

	t.Run("strips self-referential preamble", func(t *testing.T) {
		got := Sanitize("Based on the information provided, the patient takes warfarin.")
		assert.Equal(t, "the patient takes warfarin.", got)
	})

	t.Run("strips sign-offs", func(t *testing.T) {
		got := Sanitize("The wound is healing normally. Best regards, your assistant")
		assert.Equal(t, "The wound is healing normally.", got)
	})

	t.Run("strips disclaimer lines", func(t *testing.T) {
		got := Sanitize("The patient is stable. Disclaimer: consult a physician")
		assert.Equal(t, "The patient is stable.", got)
	})

	t.Run("deduplicates sentences keeping first occurrence", func(t *testing.T) {
		assert.Equal(t, "The patient improved.", Sanitize("The patient improved. The patient improved."))
	})

	t.Run("dedupe preserves order", func(t *testing.T) {
		got := Sanitize("First finding here. Second finding here. First finding here.")
		assert.Equal(t, "First finding here. Second finding here.", got)
	})

	t.Run("drops near-empty fragments", func(t *testing.T) {
		got := Sanitize("Yes. The patient has a history of asthma.")
		assert.Equal(t, "The patient has a history of asthma.", got)
	})

	t.Run("empty input returns fallback", func(t *testing.T) {
		assert.Equal(t, FallbackMessage, Sanitize(""))
		assert.Equal(t, FallbackMessage, Sanitize("   "))
	})

	t.Run("nothing usable returns fallback", func(t *testing.T) {
		assert.Equal(t, FallbackMessage, Sanitize("<think>only internal reasoning</think>"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"<think>leak</think>Actual answer.",
			"The patient improved. The patient improved.",
			"Based on the information provided, the patient takes warfarin.",
			"The wound is healing normally. Best regards, your assistant",
			"Patient 2 takes metformin and insulin daily.",
		}
		for _, input := range inputs {
			once := Sanitize(input)
			assert.Equal(t, once, Sanitize(once), "input: %q", input)
		}
	})

	t.Run("error payloads pass through", func(t *testing.T) {
		got := Sanitize("Error generating response: request timed out")
		assert.Contains(t, got, "Error generating response")
	})
}
