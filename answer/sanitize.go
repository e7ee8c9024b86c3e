package answer

import (
	"regexp"
	"strings"
)

// FallbackMessage is returned by Sanitize when nothing usable survives cleaning.
const FallbackMessage = "I couldn't generate a clear answer. Please try rephrasing your question."

// stripRules are applied in order, each to the output of the previous one.
// Later rules assume the artifacts earlier rules target are already gone.
var stripRules = []*regexp.Regexp{
	// Tagged sections with their content, then stray tags
	regexp.MustCompile(`(?s)<[^>]+>.*?</[^>]+>`),
	regexp.MustCompile(`<[^>]+>`),

	// Fenced code blocks, including a trailing unterminated fence
	regexp.MustCompile("```[^`]*```"),
	regexp.MustCompile("(?s)```.*$"),

	// Echoed raw patient data
	regexp.MustCompile(`Patient \d+ has (the following|undergone).+?(:|\n)`),
	regexp.MustCompile(`- [^\n]+\n`),

	// Meta-commentary about the answer itself
	regexp.MustCompile(`(?is)Please note that.*?question`),
	regexp.MustCompile(`(?is)Let me know if this meets.*`),
	regexp.MustCompile(`(?is)The answer should be.*`),
	regexp.MustCompile(`(?is)I should.*`),

	// Self-referential preambles, up to the next comma
	regexp.MustCompile(`Based on the information provided.*?,`),
	regexp.MustCompile(`According to the patient data.*?,`),

	// Sign-offs through end of text
	regexp.MustCompile(`(?s)Best regards,.*`),
	regexp.MustCompile(`(?s)Sincerely,.*`),
	regexp.MustCompile(`(?s)Thanks,.*`),

	// Disclaimer lines
	regexp.MustCompile(`Note:.*`),
	regexp.MustCompile(`Disclaimer:.*`),
}

var (
	sentenceBoundaryPattern = regexp.MustCompile(`[.!?]`)
	multiSpacePattern       = regexp.MustCompile(`\s{2,}`)
)

// Sanitize cleans raw generated text: strips leaked tags, code fences,
// echoed patient data, meta-commentary, and sign-offs, then deduplicates
// sentences while preserving first-occurrence order. The result is
// idempotent: sanitizing already-clean text changes nothing. When nothing
// usable remains, FallbackMessage is returned.
func Sanitize(raw string) string {
	text := raw
	for _, rule := range stripRules {
		text = rule.ReplaceAllString(text, "")
	}

	// Split into sentences, drop near-empty fragments, and deduplicate
	// keeping the first occurrence of each sentence.
	parts := sentenceBoundaryPattern.Split(text, -1)
	seen := make(map[string]bool, len(parts))
	unique := make([]string, 0, len(parts))
	for _, sentence := range parts {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 5 || seen[sentence] {
			continue
		}
		seen[sentence] = true
		unique = append(unique, sentence)
	}

	clean := strings.Join(unique, ". ")
	if clean != "" && !strings.HasSuffix(clean, ".") {
		clean += "."
	}
	clean = multiSpacePattern.ReplaceAllString(clean, " ")

	if strings.TrimSpace(clean) == "" {
		return FallbackMessage
	}

	return clean
}
