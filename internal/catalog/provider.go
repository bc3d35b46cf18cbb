package catalog

import (
	"context"
	"fmt"
)

// Provider loads the reference tables. Implementations must be callable
// once per process lifetime (or per explicit refresh) and must not block
// the dispatch path beyond the initial load.
type Provider interface {
	LoadLocations(ctx context.Context) ([]Location, error)
	LoadHandbooks(ctx context.Context) ([]Handbook, error)
	LoadFAQ(ctx context.Context) ([]FAQEntry, error)
	LoadLockerHours(ctx context.Context) (HourTable, error)
	LoadServeryHours(ctx context.Context) (HourTable, error)
}

// Catalog holds all loaded reference tables for a process lifetime.
// Read-only after Load; reloading is an out-of-band host operation.
type Catalog struct {
	Locations    []Location
	Handbooks    []Handbook
	FAQ          []FAQEntry
	LockerHours  HourTable
	ServeryHours HourTable
}

// Load reads every table from the provider. A missing required catalog is
// a startup failure, not something to paper over at dispatch time.
func Load(ctx context.Context, p Provider) (*Catalog, error) {
	locations, err := p.LoadLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("load locations: empty catalog")
	}

	handbooks, err := p.LoadHandbooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load handbooks: %w", err)
	}

	faq, err := p.LoadFAQ(ctx)
	if err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}

	lockers, err := p.LoadLockerHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locker hours: %w", err)
	}

	serveries, err := p.LoadServeryHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("load servery hours: %w", err)
	}

	return &Catalog{
		Locations:    locations,
		Handbooks:    handbooks,
		FAQ:          faq,
		LockerHours:  lockers,
		ServeryHours: serveries,
	}, nil
}
