package proposal

import (
	"strings"
	"unicode"
)

// PatternTagger derives learned-pattern tags from an original draft and the
// user's edited version. Implementations must be deterministic so the stored
// training records stay a pure function of the two texts.
type PatternTagger interface {
	Analyze(original, edited string) []string
}

// RuleTagger is the heuristic tagger: ordered, cheap textual checks. It can
// be swapped for a statistical classifier without touching the persistence
// path.
type RuleTagger struct{}

func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

// Analyze runs the rules in fixed order. Multiple tags may co-occur.
func (t *RuleTagger) Analyze(original, edited string) []string {
	patterns := []string{}

	if len(edited) > len(original) {
		patterns = append(patterns, "user_adds_more_details")
	}
	if len(edited) < len(original) {
		patterns = append(patterns, "user_prefers_conciseness")
	}
	if strings.Contains(edited, "portfolio") && !strings.Contains(original, "portfolio") {
		patterns = append(patterns, "user_adds_portfolio_links")
	}
	if strings.Contains(edited, "call") || strings.Contains(edited, "meeting") {
		patterns = append(patterns, "user_adds_call_to_action")
	}
	if strings.Contains(edited, "$") || strings.Contains(edited, "budget") {
		patterns = append(patterns, "user_discusses_budget")
	}
	if strings.Contains(edited, "experience") && !strings.Contains(original, "experience") {
		patterns = append(patterns, "user_emphasizes_experience")
	}
	if strings.Contains(edited, "specific") || strings.Contains(edited, "detailed") {
		patterns = append(patterns, "user_prefers_specificity")
	}
	if firstPersonCount(edited) > firstPersonCount(original) {
		patterns = append(patterns, "user_increases_personal_references")
	}
	if strings.Contains(edited, "excited") || strings.Contains(edited, "enthusiastic") {
		patterns = append(patterns, "user_prefers_enthusiastic_tone")
	}
	if strings.Contains(edited, "professional") || strings.Contains(edited, "expertise") {
		patterns = append(patterns, "user_emphasizes_professionalism")
	}

	return patterns
}

// firstPersonCount counts first-person pronouns as standalone words.
func firstPersonCount(text string) int {
	count := 0
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		switch strings.ToLower(word) {
		case "i", "me", "my", "mine", "i'm", "i've", "i'll":
			count++
		}
	}
	return count
}
