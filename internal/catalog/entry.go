// Package catalog defines the typed reference tables the bot answers from:
// campus locations, program handbooks, FAQ pairs, and locker/servery hour
// tables. Entries are immutable during a routing turn; the host reloads
// them wholesale.
package catalog

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// Common errors
var (
	// ErrNotFound is returned when a resource is not found in the catalog store
	ErrNotFound = errors.New("resource not found")
)

// Kind discriminates catalog entry types.
type Kind string

const (
	KindLocation Kind = "location"
	KindHandbook Kind = "handbook"
	KindFAQ      Kind = "faq"
)

// Entry is the common shape shared by all catalog rows. Each catalog kind
// is a concrete struct; there are no untyped attribute bags on the hot path.
type Entry interface {
	// EntryID returns the stable opaque identifier.
	EntryID() string
	// PrimaryName returns the canonical display name used for matching.
	PrimaryName() string
	// Aliases returns alternative names, ordered, possibly empty.
	Aliases() []string
	// Attributes returns free-form metadata for display and delivery.
	Attributes() map[string]string
	// Kind returns the catalog kind.
	Kind() Kind
}

// Tagged is implemented by entries that carry feature tags
// (currently only locations).
type Tagged interface {
	Entry
	TagList() []string
}

// Location is a place on campus.
type Location struct {
	UID       string   `json:"uid"`
	Name      string   `json:"name"`
	AliasList []string `json:"aliases,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   string   `json:"address,omitempty"`
}

func (l Location) EntryID() string     { return l.UID }
func (l Location) PrimaryName() string { return l.Name }
func (l Location) Aliases() []string   { return l.AliasList }
func (l Location) TagList() []string   { return l.Tags }
func (l Location) Kind() Kind          { return KindLocation }

func (l Location) Attributes() map[string]string {
	return map[string]string{
		"tags":      strings.Join(l.Tags, ", "),
		"address":   l.Address,
		"latitude":  strconv.FormatFloat(l.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(l.Longitude, 'f', -1, 64),
	}
}

// Handbook is a program handbook artifact (a PDF in object storage).
type Handbook struct {
	UID       string   `json:"uid"`
	Major     string   `json:"major"`
	AliasList []string `json:"aliases,omitempty"`
	FileName  string   `json:"file_name"`
}

func (h Handbook) EntryID() string     { return h.UID }
func (h Handbook) PrimaryName() string { return h.Major }
func (h Handbook) Aliases() []string   { return h.AliasList }
func (h Handbook) Kind() Kind          { return KindHandbook }

func (h Handbook) Attributes() map[string]string {
	return map[string]string{"file_name": h.FileName}
}

// FAQEntry is one curated question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f FAQEntry) EntryID() string     { return f.Question }
func (f FAQEntry) PrimaryName() string { return f.Question }
func (f FAQEntry) Aliases() []string   { return nil }
func (f FAQEntry) Kind() Kind          { return KindFAQ }

func (f FAQEntry) Attributes() map[string]string {
	return map[string]string{"answer": f.Answer}
}

// HourTable holds opening hours keyed college -> day -> section -> range.
// For lockers the section is a basement letter; for serveries a meal type.
type HourTable map[string]map[string]map[string]string

// Colleges returns the college names present in the table, catalog order
// is not meaningful here so the result is sorted for stable output.
func (t HourTable) Colleges() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Days returns the day names for a college, sorted.
func (t HourTable) Days(college string) []string {
	days := make([]string, 0, len(t[college]))
	for day := range t[college] {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}

// LocationEntries adapts a location slice to the generic Entry interface.
func LocationEntries(locs []Location) []Entry {
	out := make([]Entry, len(locs))
	for i, l := range locs {
		out[i] = l
	}
	return out
}

// TaggedLocations adapts a location slice to the Tagged interface.
func TaggedLocations(locs []Location) []Tagged {
	out := make([]Tagged, len(locs))
	for i, l := range locs {
		out[i] = l
	}
	return out
}

// HandbookEntries adapts a handbook slice to the generic Entry interface.
func HandbookEntries(hbs []Handbook) []Entry {
	out := make([]Entry, len(hbs))
	for i, h := range hbs {
		out[i] = h
	}
	return out
}

// FAQEntries adapts an FAQ slice to the generic Entry interface.
func FAQEntries(faqs []FAQEntry) []Entry {
	out := make([]Entry, len(faqs))
	for i, f := range faqs {
		out[i] = f
	}
	return out
}
