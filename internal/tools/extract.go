package tools

import (
	"regexp"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// collegeAliases maps every way people write a college to its canonical
// name. Order matters: longer aliases are checked before their prefixes.
var collegeAliases = []struct {
	alias   string
	college string
}{
	{"krupp college", "Krupp College"},
	{"krupp", "Krupp College"},
	{"college iii", "College III"},
	{"college 3", "College III"},
	{"c3", "College III"},
	{"nordmetall college", "Nordmetall College"},
	{"nordmetall", "Nordmetall College"},
	{"nord", "Nordmetall College"},
	{"mercator college", "Mercator College"},
	{"mercator", "Mercator College"},
	{"coffee bar", "Coffee Bar"},
	{"cafe", "Coffee Bar"},
	{"bar", "Coffee Bar"},
}

// CollegeNames lists the colleges offered in follow-up prompts.
var CollegeNames = []string{"Krupp", "College III", "Nordmetall", "Mercator"}

// extractCollege finds a college mention in the text. serveryVenues adds
// the Coffee Bar aliases, which make no sense for lockers.
func extractCollege(text string, serveryVenues bool) (string, bool) {
	q := " " + stringutil.Normalize(text) + " "
	for _, ca := range collegeAliases {
		if !serveryVenues && ca.college == "Coffee Bar" {
			continue
		}
		if strings.Contains(q, " "+ca.alias+" ") {
			return ca.college, true
		}
	}
	return "", false
}

// majorPrefixes introduce the program name in a handbook request. Longer
// phrases come first so their tails are cut cleanly.
var majorPrefixes = []string{
	"show me the handbook for",
	"get me the handbook for",
	"can i see the handbook for",
	"find the handbook for",
	"handbook for",
	"handbook of",
}

var majorPattern = regexp.MustCompile(`(?:major|program|degree)(?:\s+in)?\s+([a-z ]+?)(?:$|\.|\?)`)

// extractMajor pulls the program name out of a handbook request, so a
// miss can still report which program the user asked about.
func extractMajor(text string) (string, bool) {
	q := stringutil.Normalize(text)
	for _, prefix := range majorPrefixes {
		if _, rest, ok := strings.Cut(q, prefix); ok {
			if rest = strings.TrimSpace(strings.Trim(rest, " ?.!")); rest != "" {
				return rest, true
			}
		}
	}
	if m := majorPattern.FindStringSubmatch(q); m != nil {
		if major := strings.TrimSpace(m[1]); major != "" {
			return major, true
		}
	}
	return "", false
}

// dayAliases maps day words onto the canonical tokens the hour tables use.
var dayAliases = []struct {
	alias string
	day   string
}{
	{"monday", "monday"},
	{"tuesday", "tuesday"},
	{"wednesday", "wednesday"},
	{"thursday", "thursday"},
	{"friday", "friday"},
	{"saturday", "weekend"},
	{"sunday", "weekend"},
	{"weekend", "weekend"},
	{"weekday", "weekday"},
	{"holiday", "holiday"},
	{"today", ""},
}

// extractDay finds a day mention. "today" is intentionally unmapped: the
// bot has no timezone-safe notion of the user's current day, so it asks.
func extractDay(text string) (string, bool) {
	q := stringutil.Normalize(text)
	for _, da := range dayAliases {
		if stringutil.ContainsWord(q, da.alias) && da.day != "" {
			return da.day, true
		}
	}
	return "", false
}

// weekdayNames are the canonical tokens that fold onto "weekday" when a
// table only distinguishes weekday from weekend.
var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true,
}

// foldDay maps a requested day onto the closest key present in the table.
func foldDay(day string, available []string) (string, bool) {
	for _, a := range available {
		if a == day {
			return day, true
		}
	}
	if weekdayNames[day] {
		for _, a := range available {
			if a == "weekday" {
				return "weekday", true
			}
		}
	}
	return "", false
}

var basementPattern = regexp.MustCompile(`\bbasement\s*([abcdf])\b`)

// extractBasement finds a basement letter. A bare letter counts only when
// it is the whole message (a slot-filling reply), otherwise the article
// "a" would read as Basement A.
func extractBasement(text string) (string, bool) {
	q := stringutil.Normalize(text)
	if m := basementPattern.FindStringSubmatch(q); m != nil {
		return "Basement " + strings.ToUpper(m[1]), true
	}
	if len(q) == 1 && strings.Contains("abcdf", q) {
		return "Basement " + strings.ToUpper(q), true
	}
	return "", false
}

// mealAliases maps meal words onto the servery table's meal types.
var mealAliases = []struct {
	alias string
	meal  string
}{
	{"breakfast", "breakfast"},
	{"morning", "breakfast"},
	{"lunch", "lunch"},
	{"noon", "lunch"},
	{"midday", "lunch"},
	{"brunch", "brunch"},
	{"dinner", "dinner"},
	{"evening", "dinner"},
	{"supper", "dinner"},
	{"pizza", "pizza/pasta"},
	{"pasta", "pizza/pasta"},
	{"burger", "burgers/loaded fries"},
	{"burgers", "burgers/loaded fries"},
	{"fries", "burgers/loaded fries"},
}

// extractMeal finds a meal mention.
func extractMeal(text string) (string, bool) {
	q := stringutil.Normalize(text)
	for _, ma := range mealAliases {
		if stringutil.ContainsWord(q, ma.alias) {
			return ma.meal, true
		}
	}
	return "", false
}
