package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
)

// LocationTool finds places on campus. Feature queries ("somewhere to
// print") list tagged locations; everything else goes through the name
// resolver and replies with a map pin.
type LocationTool struct {
	locations []catalog.Location
	resolver  *resolve.Resolver
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewLocationTool builds the location handler.
func NewLocationTool(locations []catalog.Location, cfg resolve.Config, log *logger.Logger, m *metrics.Metrics) *LocationTool {
	return &LocationTool{
		locations: locations,
		resolver:  resolve.New(catalog.LocationEntries(locations), cfg),
		log:       log.WithModule("location"),
		metrics:   m,
	}
}

func (t *LocationTool) Name() string {
	return "location"
}

func (t *LocationTool) Description() string {
	return "find buildings and venues on campus, including places to print, study, or eat"
}

func (t *LocationTool) Handle(_ context.Context, req *Request) (*channel.Response, error) {
	if tags := resolve.Features(req.Text); len(tags) > 0 {
		return t.byFeature(tags), nil
	}

	match, ok := t.resolver.Resolve(req.Text)
	if !ok {
		return channel.NewText("😕 I don't know that place. Try the building's name or what you want to do there."), nil
	}
	t.metrics.RecordResolve("location", match.Strategy.String())

	loc, ok := match.Entry.(catalog.Location)
	if !ok {
		return nil, fmt.Errorf("location resolver returned %T", match.Entry)
	}
	return locationResponse(loc), nil
}

func (t *LocationTool) byFeature(tags []string) *channel.Response {
	hits := resolve.ByTags(catalog.TaggedLocations(t.locations), tags)
	if len(hits) == 0 {
		return channel.NewText(fmt.Sprintf(
			"I couldn't find a place for %s on campus.", strings.Join(tags, ", ")))
	}
	t.metrics.RecordResolve("location", "feature")

	var sb strings.Builder
	fmt.Fprintf(&sb, "📍 Places for %s:\n", strings.Join(tags, ", "))
	for _, h := range hits {
		loc, ok := h.(catalog.Location)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "- %s", loc.Name)
		if loc.Address != "" {
			fmt.Fprintf(&sb, " (%s)", loc.Address)
		}
		sb.WriteString("\n")
	}
	return channel.NewText(strings.TrimRight(sb.String(), "\n"))
}

func locationResponse(loc catalog.Location) *channel.Response {
	resp := channel.NewText(fmt.Sprintf("📍 %s", loc.Name))
	if loc.Address != "" {
		resp.Text += fmt.Sprintf("\n%s", loc.Address)
	}
	if loc.Latitude != 0 || loc.Longitude != 0 {
		resp.Venue = &channel.Venue{
			Title:     loc.Name,
			Address:   loc.Address,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}
	}
	return resp
}
