package resolve

import (
	"regexp"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// featurePatterns maps activity words in a query to the catalog tag that
// marks locations supporting the activity.
var featurePatterns = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`\bprint(?:ing|er)?\b`), "printer"},
	{regexp.MustCompile(`\bstud(?:y|ying)\b`), "study"},
	{regexp.MustCompile(`\bquiet\b`), "study"},
	{regexp.MustCompile(`\b(?:food|eat(?:ing)?|dining|meal|cafeteria)\b`), "food"},
	{regexp.MustCompile(`\bcoffee\b`), "coffee"},
	{regexp.MustCompile(`\bify\b`), "ify"},
	{regexp.MustCompile(`\blectures?\b`), "lecture"},
	{regexp.MustCompile(`\blabs?\b`), "lab"},
}

// Features extracts the tags a query asks for, in pattern order with
// duplicates removed. "somewhere to print and study" yields printer, study.
func Features(query string) []string {
	q := stringutil.Normalize(query)
	var tags []string
	seen := make(map[string]struct{})
	for _, fp := range featurePatterns {
		if !fp.re.MatchString(q) {
			continue
		}
		if _, dup := seen[fp.tag]; dup {
			continue
		}
		seen[fp.tag] = struct{}{}
		tags = append(tags, fp.tag)
	}
	return tags
}

// ByTags returns every tagged entry carrying at least one requested tag,
// preserving catalog order.
func ByTags(entries []catalog.Tagged, tags []string) []catalog.Tagged {
	if len(tags) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		wanted[t] = struct{}{}
	}
	var out []catalog.Tagged
	for _, e := range entries {
		for _, tag := range e.TagList() {
			if _, ok := wanted[tag]; ok {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
