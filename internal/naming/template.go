package naming

import (
	"context"
	"strconv"
	"strings"

	"github.com/jengzang/habitminer/internal/analysis/habit"
)

// TemplateNamer builds names from the pattern alone, without a network call
type TemplateNamer struct{}

// Name implements habit.Namer
func (TemplateNamer) Name(_ context.Context, p habit.NamingPrompt) (string, error) {
	return cadenceWord(p.Frequency) + " " + periodOfDay(p.TimeOfDay) + " routine", nil
}

func cadenceWord(f habit.Frequency) string {
	switch f {
	case habit.FrequencyDaily:
		return "Daily"
	case habit.FrequencyWeekdays:
		return "Weekday"
	case habit.FrequencyWeekends:
		return "Weekend"
	default:
		return "Regular"
	}
}

// periodOfDay maps an HH:MM clock to a coarse period. Unparsable input is "daytime".
func periodOfDay(clock string) string {
	hh, _, ok := strings.Cut(clock, ":")
	hour, err := strconv.Atoi(hh)
	if !ok || err != nil {
		return "daytime"
	}
	switch {
	case hour >= 5 && hour < 11:
		return "morning"
	case hour >= 11 && hour < 14:
		return "midday"
	case hour >= 14 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}
