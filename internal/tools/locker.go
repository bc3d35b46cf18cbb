package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/logger"
)

// LockerTool answers locker service hour questions with a slot-filling
// follow-up when the college is missing.
type LockerTool struct {
	hours  catalog.HourTable
	states *convstate.Store
	log    *logger.Logger
}

// NewLockerTool builds the locker handler.
func NewLockerTool(hours catalog.HourTable, states *convstate.Store, log *logger.Logger) *LockerTool {
	return &LockerTool{hours: hours, states: states, log: log.WithModule("locker")}
}

func (t *LockerTool) Name() string {
	return "locker"
}

func (t *LockerTool) Description() string {
	return "locker assignment and basement service window hours per college"
}

const collegeNotRecognized = "😕 I couldn't identify the college. " +
	"Please mention one of: Krupp, College III, Nordmetall, Mercator."

// Handle resolves the college (asking once when absent) and renders the
// matching service windows.
func (t *LockerTool) Handle(_ context.Context, req *Request) (*channel.Response, error) {
	text := req.Text
	followUp := false
	if state, ok := t.states.Peek(req.UserID); ok && state.PendingIntent == t.Name() {
		t.states.Consume(req.UserID)
		text = state.OriginalQuery + " " + req.Text
		followUp = true
	}

	college, ok := extractCollege(text, false)
	if !ok {
		if followUp {
			// One follow-up only. A second miss ends the exchange.
			return channel.NewText(collegeNotRecognized), nil
		}
		t.states.Begin(req.UserID, convstate.State{
			PendingIntent: t.Name(),
			PendingSlot:   convstate.SlotCollege,
			OriginalQuery: req.Text,
		})
		return channel.NewFollowUp("🔓 Which college's locker hours do you need?", CollegeNames...), nil
	}

	days := t.hours[college]
	if len(days) == 0 {
		return channel.NewText(fmt.Sprintf("There is no locker service at %s.", college)), nil
	}

	dayFilter, hasDay := extractDay(text)
	basementFilter, hasBasement := extractBasement(text)

	dayNames := t.hours.Days(college)
	if hasDay {
		folded, ok := foldDay(dayFilter, dayNames)
		if !ok {
			return channel.NewText(fmt.Sprintf(
				"🔓 Lockers at %s are only serviced on: %s.",
				college, strings.Join(dayNames, ", "))), nil
		}
		dayNames = []string{folded}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔓 Locker Hours for *%s*:\n", college)
	wroteRow := false
	for _, day := range dayNames {
		sections := days[day]
		basements := make([]string, 0, len(sections))
		for b := range sections {
			if hasBasement && b != basementFilter {
				continue
			}
			basements = append(basements, b)
		}
		if len(basements) == 0 {
			continue
		}
		slices.Sort(basements)
		fmt.Fprintf(&sb, "\n📅 Day: %s\n", day)
		for _, b := range basements {
			fmt.Fprintf(&sb, "- %s: %s\n", b, sections[b])
		}
		wroteRow = true
	}

	if hasBasement && !wroteRow {
		return channel.NewText(fmt.Sprintf(
			"There is no service window for %s at %s.", basementFilter, college)), nil
	}

	return channel.NewText(strings.TrimRight(sb.String(), "\n")), nil
}
