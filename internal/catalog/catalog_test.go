package catalog

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestProvider(t *testing.T) *SQLiteProvider {
	t.Helper()
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSeedDefaultsAndLoad(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}

	cat, err := Load(ctx, p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := len(cat.Locations), len(DefaultLocations); got != want {
		t.Errorf("len(Locations) = %d, want %d", got, want)
	}
	if got, want := len(cat.Handbooks), len(DefaultHandbooks); got != want {
		t.Errorf("len(Handbooks) = %d, want %d", got, want)
	}
	if got, want := len(cat.FAQ), len(DefaultFAQ); got != want {
		t.Errorf("len(FAQ) = %d, want %d", got, want)
	}
	if len(cat.LockerHours) == 0 {
		t.Error("LockerHours is empty")
	}
	if len(cat.ServeryHours) == 0 {
		t.Error("ServeryHours is empty")
	}
}

func TestSeedDefaultsPreservesExistingRows(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, err := p.conn.ExecContext(ctx,
		`INSERT INTO locations (uid, name, aliases) VALUES ('custom', 'Custom Hall', 'CH')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := p.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}

	locations, err := p.LoadLocations(ctx)
	if err != nil {
		t.Fatalf("LoadLocations() error = %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("len(locations) = %d, want 1 (seed must not touch managed data)", len(locations))
	}
	if locations[0].UID != "custom" {
		t.Errorf("UID = %q, want %q", locations[0].UID, "custom")
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.SeedDefaults(ctx); err != nil {
		t.Fatalf("first SeedDefaults() error = %v", err)
	}
	if err := p.SeedDefaults(ctx); err != nil {
		t.Fatalf("second SeedDefaults() error = %v", err)
	}

	locations, err := p.LoadLocations(ctx)
	if err != nil {
		t.Fatalf("LoadLocations() error = %v", err)
	}
	if got, want := len(locations), len(DefaultLocations); got != want {
		t.Errorf("len(locations) = %d, want %d", got, want)
	}
}

func TestLoadLocationsPreservesOrderAndLists(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)
	if err := p.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}

	locations, err := p.LoadLocations(ctx)
	if err != nil {
		t.Fatalf("LoadLocations() error = %v", err)
	}
	if locations[0].UID != DefaultLocations[0].UID {
		t.Errorf("first UID = %q, want %q", locations[0].UID, DefaultLocations[0].UID)
	}

	var oceanLab *Location
	for i := range locations {
		if locations[i].UID == "ocean-lab" {
			oceanLab = &locations[i]
			break
		}
	}
	if oceanLab == nil {
		t.Fatal("ocean-lab not loaded")
	}
	if len(oceanLab.AliasList) != 1 || oceanLab.AliasList[0] != "OL" {
		t.Errorf("ocean-lab aliases = %v, want [OL]", oceanLab.AliasList)
	}
}

func TestLoadFailsWithoutLocations(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, err := Load(ctx, p); err == nil {
		t.Error("Load() on empty catalog succeeded, want error")
	}
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	cat, err := Load(ctx, StaticProvider{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Locations) == 0 || len(cat.Handbooks) == 0 {
		t.Error("static catalog incomplete")
	}
}

func TestHourTableColleges(t *testing.T) {
	colleges := DefaultServeryHours.Colleges()
	if len(colleges) != 5 {
		t.Fatalf("len(colleges) = %d, want 5", len(colleges))
	}
	for i := 1; i < len(colleges); i++ {
		if colleges[i-1] > colleges[i] {
			t.Errorf("colleges not sorted: %v", colleges)
			break
		}
	}
}

func TestHourTableDays(t *testing.T) {
	days := DefaultLockerHours.Days("Krupp College")
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	if days := DefaultLockerHours.Days("No Such College"); len(days) != 0 {
		t.Errorf("Days(unknown) = %v, want empty", days)
	}
}
