// Package intent decides which tool answers a message.
//
// Classification runs four steps in order: a pending slot-filling state
// routes back to its original tool, keyword rules catch the unambiguous
// cases without an API call, an LLM labels everything else, and the open
// question-answering tool absorbs whatever remains.
package intent

// Intent names a registered tool.
type Intent string

const (
	IntentLocation Intent = "location"
	IntentLocker   Intent = "locker"
	IntentServery  Intent = "servery"
	IntentHandbook Intent = "handbook"
	IntentFAQ      Intent = "faq"
	IntentQA       Intent = "qa"
)

// AllIntents lists every intent in declaration order.
var AllIntents = []Intent{
	IntentLocation,
	IntentLocker,
	IntentServery,
	IntentHandbook,
	IntentFAQ,
	IntentQA,
}

func (i Intent) String() string {
	return string(i)
}

// ParseIntent maps a string to a known intent.
func ParseIntent(s string) (Intent, bool) {
	for _, intent := range AllIntents {
		if string(intent) == s {
			return intent, true
		}
	}
	return "", false
}

// Source records which classification step produced the result.
type Source string

const (
	SourcePending Source = "pending"
	SourceRule    Source = "rule"
	SourceCache   Source = "cache"
	SourceLLM     Source = "llm"
	SourceDefault Source = "default"
)

// Result is a classified message.
type Result struct {
	Intent Intent
	Source Source
}

// ToolInfo describes a registered tool for prompt construction.
type ToolInfo struct {
	Name        string
	Description string
}
