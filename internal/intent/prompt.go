package intent

import (
	"fmt"
	"slices"
	"strings"
)

// promptExamples anchor the model on the boundary cases: artifact requests
// versus content questions, procedure versus hours, place versus topic.
var promptExamples = []struct {
	message string
	intent  Intent
}{
	{"Where is the library?", IntentLocation},
	{"I need somewhere to print", IntentLocation},
	{"When can I pick up a locker key?", IntentLocker},
	{"What time is lunch at Krupp?", IntentServery},
	{"Send me the CS handbook", IntentHandbook},
	{"What courses are in the CS handbook?", IntentQA},
	{"How do I connect to the wifi?", IntentFAQ},
	{"Why is the sky blue?", IntentQA},
}

// BuildPrompt renders the system instruction for LLM classification. The
// model must answer with exactly one tool name.
func BuildPrompt(tools []ToolInfo) string {
	var sb strings.Builder
	sb.WriteString("You route messages for a campus assistant. ")
	sb.WriteString("Classify the user's message into exactly one of the tools below. ")
	sb.WriteString("Reply with only the tool name, nothing else.\n\nTools:\n")
	for _, t := range tools {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Name, t.Description)
	}
	sb.WriteString("\nExamples:\n")
	for _, ex := range promptExamples {
		fmt.Fprintf(&sb, "- %q -> %s\n", ex.message, ex.intent)
	}
	return sb.String()
}

// parseReply maps a model reply onto a known intent. Exact token match is
// tried first, then substring containment checked from the longest intent
// name down so "faq" never shadows a reply that says "qa". Unparseable
// replies fall back to the open QA tool.
func parseReply(reply string) Intent {
	cleaned := strings.ToLower(strings.TrimSpace(reply))
	cleaned = strings.Trim(cleaned, `"'.`)
	if intent, ok := ParseIntent(cleaned); ok {
		return intent
	}

	byLength := slices.Clone(AllIntents)
	slices.SortFunc(byLength, func(a, b Intent) int { return len(b) - len(a) })
	for _, intent := range byLength {
		if strings.Contains(cleaned, string(intent)) {
			return intent
		}
	}
	return IntentQA
}
