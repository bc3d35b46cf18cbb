package catalog

import "context"

// Embedded campus data used to seed an empty database. A deployment that
// manages its own catalog rows overrides all of this.

// DefaultLocations covers the buildings and venues people ask about most.
var DefaultLocations = []Location{
	{
		UID:       "campus-center",
		Name:      "Campus Center",
		AliasList: []string{"CC", "center"},
		Tags:      []string{"food", "coffee", "study"},
		Latitude:  53.16778, Longitude: 8.65166,
		Address: "Campus Ring 1",
	},
	{
		UID:       "irc",
		Name:      "Information Resource Center",
		AliasList: []string{"IRC", "library"},
		Tags:      []string{"study", "quiet", "printer"},
		Latitude:  53.16733, Longitude: 8.65318,
		Address: "Campus Ring 1",
	},
	{
		UID:       "ocean-lab",
		Name:      "Ocean Lab",
		AliasList: []string{"OL"},
		Tags:      []string{"lab"},
		Latitude:  53.16845, Longitude: 8.65597,
	},
	{
		UID:       "krupp-college",
		Name:      "Krupp College",
		AliasList: []string{"Krupp"},
		Tags:      []string{"food", "residence"},
		Latitude:  53.16658, Longitude: 8.65034,
	},
	{
		UID:       "college-iii",
		Name:      "College III",
		AliasList: []string{"C3", "College 3"},
		Tags:      []string{"food", "residence"},
		Latitude:  53.16901, Longitude: 8.65229,
	},
	{
		UID:       "nordmetall-college",
		Name:      "Nordmetall College",
		AliasList: []string{"Nordmetall", "Nord"},
		Tags:      []string{"food", "residence"},
		Latitude:  53.16952, Longitude: 8.65471,
	},
	{
		UID:       "mercator-college",
		Name:      "Mercator College",
		AliasList: []string{"Mercator"},
		Tags:      []string{"food", "residence"},
		Latitude:  53.16611, Longitude: 8.65350,
	},
	{
		UID:       "coffee-bar",
		Name:      "Coffee Bar",
		AliasList: []string{"café", "cafe", "bar"},
		Tags:      []string{"coffee", "food"},
		Latitude:  53.16771, Longitude: 8.65172,
		Address: "Campus Center, ground floor",
	},
	{
		UID:       "research-i",
		Name:      "Research I",
		AliasList: []string{"R1", "Res 1"},
		Tags:      []string{"lab", "printer"},
		Latitude:  53.16680, Longitude: 8.65443,
	},
	{
		UID:       "research-iii",
		Name:      "Research III",
		AliasList: []string{"R3", "Res 3"},
		Tags:      []string{"lab"},
		Latitude:  53.16810, Longitude: 8.65520,
	},
	{
		UID:       "reimar-luest-hall",
		Name:      "Reimar Lüst Hall",
		AliasList: []string{"RLH", "lecture hall"},
		Tags:      []string{"lecture"},
		Latitude:  53.16720, Longitude: 8.65260,
	},
	{
		UID:       "east-hall",
		Name:      "East Hall",
		AliasList: []string{"EH"},
		Tags:      []string{"lecture", "study"},
		Latitude:  53.16760, Longitude: 8.65590,
	},
}

// DefaultHandbooks indexes the major handbooks available for download.
var DefaultHandbooks = []Handbook{
	{
		UID:      "computer-science",
		Major:    "Computer Science",
		AliasList: []string{"CS", "compsci", "informatics"},
		FileName: "handbook-computer-science.pdf",
	},
	{
		UID:      "robotics-intelligent-systems",
		Major:    "Robotics and Intelligent Systems",
		AliasList: []string{"RIS", "robotics"},
		FileName: "handbook-robotics-intelligent-systems.pdf",
	},
	{
		UID:      "software-data-technology",
		Major:    "Software, Data and Technology",
		AliasList: []string{"SDT", "software engineering"},
		FileName: "handbook-software-data-technology.pdf",
	},
	{
		UID:      "international-business-administration",
		Major:    "International Business Administration",
		AliasList: []string{"IBA", "business"},
		FileName: "handbook-international-business-administration.pdf",
	},
	{
		UID:      "physics",
		Major:    "Physics",
		AliasList: []string{"phys"},
		FileName: "handbook-physics.pdf",
	},
	{
		UID:      "biochemistry-cell-biology",
		Major:    "Biochemistry and Cell Biology",
		AliasList: []string{"BCCB", "biochem"},
		FileName: "handbook-biochemistry-cell-biology.pdf",
	},
	{
		UID:      "global-economics-management",
		Major:    "Global Economics and Management",
		AliasList: []string{"GEM", "economics"},
		FileName: "handbook-global-economics-management.pdf",
	},
}

// DefaultFAQ holds curated answers for recurring student questions.
var DefaultFAQ = []FAQEntry{
	{
		Question: "How do I get a locker?",
		Answer:   "Lockers are assigned at the basement service windows during opening hours. Bring your student ID; assignment runs on a first come first served basis.",
	},
	{
		Question: "Where can I print on campus?",
		Answer:   "Printers are available in the IRC and in Research I. Log in with your campus account; printing is charged to your campus card.",
	},
	{
		Question: "How do I connect to the campus wifi?",
		Answer:   "Connect to the 'campusnet' network and sign in with your campus account. Eduroam is also available for visitors from partner universities.",
	},
	{
		Question: "Where do I top up my campus card?",
		Answer:   "Top-up terminals are located in the Campus Center lobby and next to the IRC entrance. They accept EC and credit cards.",
	},
	{
		Question: "Who do I contact about housing?",
		Answer:   "Housing questions go to the Residential Life office in the Campus Center, or by mail to reslife@campus.example.",
	},
	{
		Question: "How do I register my address in the city?",
		Answer:   "Register at the city registration office within two weeks of moving in. The international office can give you the confirmation-of-residence form your college office signs.",
	},
}

// DefaultLockerHours lists the basement service windows.
// Lockers are only staffed on Mondays and Thursdays.
var DefaultLockerHours = HourTable{
	"Krupp College": {
		"monday": {
			"Basement A": "8:00 - 10:00",
			"Basement B": "10:00 - 12:00",
			"Basement C": "14:00 - 16:00",
		},
		"thursday": {
			"Basement A": "8:00 - 10:00",
			"Basement B": "14:00 - 16:00",
			"Basement C": "16:00 - 18:00",
		},
	},
	"College III": {
		"monday": {
			"Basement A": "9:00 - 11:00",
			"Basement D": "14:00 - 16:00",
		},
		"thursday": {
			"Basement A": "9:00 - 11:00",
			"Basement D": "16:00 - 18:00",
		},
	},
	"Nordmetall College": {
		"monday": {
			"Basement B": "8:00 - 10:00",
			"Basement F": "15:00 - 17:00",
		},
		"thursday": {
			"Basement B": "10:00 - 12:00",
			"Basement F": "15:00 - 17:00",
		},
	},
	"Mercator College": {
		"monday": {
			"Basement C": "9:00 - 11:00",
			"Basement D": "13:00 - 15:00",
		},
		"thursday": {
			"Basement C": "13:00 - 15:00",
			"Basement D": "15:00 - 17:00",
		},
	},
}

// DefaultServeryHours lists meal service times per college.
var DefaultServeryHours = HourTable{
	"Krupp College": {
		"weekday": {
			"breakfast": "7:30 - 10:00",
			"lunch":     "12:00 - 14:00",
			"dinner":    "17:30 - 19:30",
		},
		"weekend": {
			"brunch": "10:30 - 13:30",
			"dinner": "17:30 - 19:00",
		},
	},
	"College III": {
		"weekday": {
			"breakfast":   "7:30 - 10:00",
			"lunch":       "12:00 - 14:00",
			"pizza/pasta": "12:00 - 14:00",
			"dinner":      "17:30 - 19:30",
		},
		"weekend": {
			"brunch": "10:30 - 13:30",
			"dinner": "17:30 - 19:00",
		},
	},
	"Nordmetall College": {
		"weekday": {
			"breakfast":            "7:30 - 10:00",
			"lunch":                "12:00 - 14:00",
			"burgers/loaded fries": "12:00 - 14:30",
			"dinner":               "17:30 - 19:30",
		},
		"weekend": {
			"brunch": "10:30 - 13:30",
			"dinner": "17:30 - 19:00",
		},
	},
	"Mercator College": {
		"weekday": {
			"breakfast": "7:30 - 10:00",
			"lunch":     "12:00 - 14:00",
			"dinner":    "17:30 - 19:30",
		},
		"weekend": {
			"brunch": "10:30 - 13:30",
			"dinner": "17:30 - 19:00",
		},
	},
	"Coffee Bar": {
		"weekday": {
			"coffee":  "8:00 - 18:00",
			"snacks":  "11:00 - 17:00",
		},
		"weekend": {
			"coffee": "10:00 - 16:00",
		},
	},
}

// StaticProvider serves the embedded defaults without a database. Used in
// tests and as a fallback when no data directory is configured.
type StaticProvider struct{}

func (StaticProvider) LoadLocations(context.Context) ([]Location, error) {
	return DefaultLocations, nil
}

func (StaticProvider) LoadHandbooks(context.Context) ([]Handbook, error) {
	return DefaultHandbooks, nil
}

func (StaticProvider) LoadFAQ(context.Context) ([]FAQEntry, error) {
	return DefaultFAQ, nil
}

func (StaticProvider) LoadLockerHours(context.Context) (HourTable, error) {
	return DefaultLockerHours, nil
}

func (StaticProvider) LoadServeryHours(context.Context) (HourTable, error) {
	return DefaultServeryHours, nil
}
