package intent

import (
	"regexp"

	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// Keyword rules catch the messages whose wording pins the tool down
// without ambiguity. Anything they skip goes to the LLM.

var (
	lockerPattern  = regexp.MustCompile(`\blockers?\b`)
	serveryPattern = regexp.MustCompile(`\b(?:servery|serveries|dining\s+hall|meal\s+plan)\b`)
	mealPattern    = regexp.MustCompile(`\b(?:breakfast|lunch|dinner|brunch|supper)\b`)
	timeTermPattern = regexp.MustCompile(
		`\b(?:hours?|time|times|when|open|opens|opening|close|closes|closing|schedule)\b`)
	handbookPattern = regexp.MustCompile(`\bhandbooks?\b`)
	locationPattern = regexp.MustCompile(
		`\b(?:where\s+is|where\s+are|where\s+can\s+i\s+find|how\s+do\s+i\s+get\s+to|directions?\s+to)\b`)
)

var faqPhrases = []string{
	"how do i get a locker",
	"wifi",
	"wi-fi",
	"campus card",
	"top up",
	"registration office",
	"register my address",
	"residence permit",
	"housing",
}

// MatchRule classifies a message by keyword rules alone. ok is false when
// no rule fires. Rule priority: locker beats servery beats handbook beats
// faq beats location.
func MatchRule(text string) (Intent, bool) {
	q := stringutil.Normalize(text)
	if q == "" {
		return "", false
	}

	// "how do i get a locker" is procedure, not hours
	if stringutil.ContainsAny(q, "how do i get a locker") {
		return IntentFAQ, true
	}

	if lockerPattern.MatchString(q) {
		return IntentLocker, true
	}
	if serveryPattern.MatchString(q) {
		return IntentServery, true
	}
	// Meal words alone are ambiguous ("where can I eat") but with a time
	// term they ask for the schedule.
	if mealPattern.MatchString(q) && timeTermPattern.MatchString(q) {
		return IntentServery, true
	}
	if handbookPattern.MatchString(q) {
		return IntentHandbook, true
	}
	if stringutil.ContainsAny(q, faqPhrases...) {
		return IntentFAQ, true
	}
	if locationPattern.MatchString(q) {
		return IntentLocation, true
	}
	return "", false
}
