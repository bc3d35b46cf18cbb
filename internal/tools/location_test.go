package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
)

func newLocationTool(t *testing.T) *LocationTool {
	t.Helper()
	return NewLocationTool(catalog.DefaultLocations, resolve.Config{}, logger.New("error"), nil)
}

func TestLocationByAlias(t *testing.T) {
	tool := newLocationTool(t)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "ol"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "Ocean Lab") {
		t.Errorf("Text = %q, want Ocean Lab", resp.Text)
	}
	if resp.Venue == nil {
		t.Fatal("Venue missing")
	}
	if resp.Venue.Latitude == 0 {
		t.Error("Venue has no coordinates")
	}
}

func TestLocationBySentence(t *testing.T) {
	tool := newLocationTool(t)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "where is the campus center"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "Campus Center") {
		t.Errorf("Text = %q, want Campus Center", resp.Text)
	}
	if !strings.Contains(resp.Text, "Campus Ring 1") {
		t.Errorf("address missing from %q", resp.Text)
	}
}

func TestLocationFeatureSearch(t *testing.T) {
	tool := newLocationTool(t)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "I need somewhere to print"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "Information Resource Center") {
		t.Errorf("IRC missing from feature results:\n%s", resp.Text)
	}
	if !strings.Contains(resp.Text, "Research I") {
		t.Errorf("Research I missing from feature results:\n%s", resp.Text)
	}
	if resp.Venue != nil {
		t.Error("feature list should not carry a venue pin")
	}
}

func TestLocationFeatureUnion(t *testing.T) {
	tool := newLocationTool(t)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "somewhere to print and study"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	for _, want := range []string{"Information Resource Center", "Campus Center", "Research I"} {
		if !strings.Contains(resp.Text, want) {
			t.Errorf("feature union missing %s:\n%s", want, resp.Text)
		}
	}
}

func TestLocationUnknown(t *testing.T) {
	tool := newLocationTool(t)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "zzgh qument"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "don't know that place") {
		t.Errorf("Text = %q, want unknown-place message", resp.Text)
	}
}
