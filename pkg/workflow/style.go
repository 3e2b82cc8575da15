package workflow

import "strings"

// Style is a deterministic content-tone tag derived from the topic text,
// distinct from the route.
type Style string

const (
	StyleEvaluation       Style = "evaluation_component"
	StyleExperimental     Style = "experimental"
	StyleProblemSolving   Style = "problem_solving"
	StyleApplicationBased Style = "application_based"
	StyleRevisionSummary  Style = "revision_summary"
	StyleInteractiveQuiz  Style = "interactive_quiz"
	StyleEnrichment       Style = "enrichment"
	StyleConceptualFocus  Style = "conceptual_focus"
)

// StyleFor resolves the content style from the resource text. Rules are
// evaluated in order, first match wins. No LLM involved.
func StyleFor(res *EnrichedResource, contentType ContentType) Style {
	if res == nil {
		return StyleConceptualFocus
	}

	unit := strings.ToLower(res.Unit)
	topic := strings.ToLower(res.Topic)
	topicID := strings.ToLower(res.TopicID)
	description := strings.ToLower(res.Description)

	switch {
	case strings.Contains(unit, "evaluation"):
		return StyleEvaluation
	case containsAny(topicID+" "+topic+" "+description, "practical", "activity", "experiment"):
		return StyleExperimental
	case containsAny(topic, "derive", "calculate", "problem", "solve", "formula"):
		return StyleProblemSolving
	case containsAny(description, "used in", "applied in", "application", "real-world"):
		return StyleApplicationBased
	case containsAny(topic, "revision", "summary"):
		return StyleRevisionSummary
	case strings.Contains(topic, "quiz") || contentType == ContentTypeQuiz:
		return StyleInteractiveQuiz
	case strings.Contains(topic, "enrich") || strings.Contains(description, "context"):
		return StyleEnrichment
	default:
		return StyleConceptualFocus
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
