package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/clinassist/core"
)

// promptTemplate directs the model to answer from the supplied data only and
// to skip preamble, repetition, and disclaimers. The sanitizer's rules are
// written against the artifacts models produce despite these instructions,
// so wording changes here ripple into sanitize.go.
const promptTemplate = `
You are a clinical assistant AI helping healthcare professionals.
TASK: Answer the following question using ONLY the patient data provided below.

FORMAT REQUIREMENTS:
- Provide ONLY the answer with absolutely no postamble, or meta-commentary
- Do not repeat the question
- Do not include phrases like "Based on the information provided" or "According to the data"
- Keep your answer to 1-2 sentences maximum
- Do not include any disclaimers, notes, or caveats
- Do not mention the PATIENT DATA section itself

PATIENT DATA:
%s

QUESTION: %s

DIRECT ANSWER:
`

// BuildPrompt renders the context notes and the query into the generation
// prompt. Each note becomes a "[Patient <id>]" block followed by its text,
// blocks separated by a blank line.
func BuildPrompt(query string, contextNotes []core.ScoredNote) string {
	blocks := make([]string, 0, len(contextNotes))
	for _, sn := range contextNotes {
		if sn.Note == nil {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[Patient %s]\n%s", sn.Note.Patient(), sn.Note.Text))
	}

	context := strings.Join(blocks, "\n\n")

	return fmt.Sprintf(promptTemplate, context, query)
}
