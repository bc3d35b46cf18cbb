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

// ServeryTool answers meal service hour questions, slot-filling the
// college the same way the locker tool does.
type ServeryTool struct {
	hours  catalog.HourTable
	states *convstate.Store
	log    *logger.Logger
}

// NewServeryTool builds the servery handler.
func NewServeryTool(hours catalog.HourTable, states *convstate.Store, log *logger.Logger) *ServeryTool {
	return &ServeryTool{hours: hours, states: states, log: log.WithModule("servery")}
}

func (t *ServeryTool) Name() string {
	return "servery"
}

func (t *ServeryTool) Description() string {
	return "servery and dining hall meal times per college, including special counters"
}

// mealOrder renders meals in the order of the day instead of
// alphabetically.
var mealOrder = map[string]int{
	"breakfast":            1,
	"brunch":               2,
	"lunch":                3,
	"pizza/pasta":          4,
	"burgers/loaded fries": 5,
	"coffee":               6,
	"snacks":               7,
	"dinner":               8,
}

func (t *ServeryTool) Handle(_ context.Context, req *Request) (*channel.Response, error) {
	text := req.Text
	followUp := false
	if state, ok := t.states.Peek(req.UserID); ok && state.PendingIntent == t.Name() {
		t.states.Consume(req.UserID)
		text = state.OriginalQuery + " " + req.Text
		followUp = true
	}

	college, ok := extractCollege(text, true)
	if !ok {
		if followUp {
			return channel.NewText(collegeNotRecognized), nil
		}
		t.states.Begin(req.UserID, convstate.State{
			PendingIntent: t.Name(),
			PendingSlot:   convstate.SlotCollege,
			OriginalQuery: req.Text,
		})
		return channel.NewFollowUp("🍽 Which college's servery do you mean?", CollegeNames...), nil
	}

	days := t.hours[college]
	if len(days) == 0 {
		return channel.NewText(fmt.Sprintf("There is no servery at %s.", college)), nil
	}

	dayFilter, hasDay := extractDay(text)
	mealFilter, hasMeal := extractMeal(text)

	dayNames := t.hours.Days(college)
	if hasDay {
		folded, ok := foldDay(dayFilter, dayNames)
		if !ok {
			return channel.NewText(fmt.Sprintf(
				"🍽 The servery at %s has no service on %s.", college, dayFilter)), nil
		}
		dayNames = []string{folded}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 Servery Hours for *%s*:\n", college)
	wroteMeal := false
	for _, day := range dayNames {
		sections := days[day]
		meals := make([]string, 0, len(sections))
		for m := range sections {
			if hasMeal && m != mealFilter {
				continue
			}
			meals = append(meals, m)
		}
		if len(meals) == 0 {
			continue
		}
		slices.SortFunc(meals, func(a, b string) int { return mealOrder[a] - mealOrder[b] })
		fmt.Fprintf(&sb, "\n📅 Day: %s\n", day)
		for _, m := range meals {
			fmt.Fprintf(&sb, "- %s: %s\n", m, sections[m])
		}
		wroteMeal = true
	}

	if hasMeal && !wroteMeal {
		return channel.NewText(fmt.Sprintf(
			"The servery at %s does not serve %s.", college, mealFilter)), nil
	}

	return channel.NewText(strings.TrimRight(sb.String(), "\n")), nil
}
