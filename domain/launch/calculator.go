package launch

import (
	"fmt"
	"time"
)

// DefaultPhases is the launch template offered by the calculator, 96 days in total.
var DefaultPhases = []PhaseTemplate{
	{Key: "planning", PhaseConfig: PhaseConfig{Name: "Planning", Days: 30}},
	{Key: "acquisition", PhaseConfig: PhaseConfig{Name: "Acquisition", Days: 21}},
	{Key: "warmup", PhaseConfig: PhaseConfig{Name: "Warm-up", Days: 7}},
	{Key: "event", PhaseConfig: PhaseConfig{Name: "Event", Days: 3}},
	{Key: "cart", PhaseConfig: PhaseConfig{Name: "Cart Open", Days: 7}},
	{Key: "recovery", PhaseConfig: PhaseConfig{Name: "Recovery", Days: 14}},
	{Key: "downsell", PhaseConfig: PhaseConfig{Name: "Downsell", Days: 7}},
	{Key: "debriefing", PhaseConfig: PhaseConfig{Name: "Debriefing", Days: 7}},
}

func DefaultTemplate() []PhaseTemplate {
	t := make([]PhaseTemplate, len(DefaultPhases))
	copy(t, DefaultPhases)
	return t
}

// PhaseName returns the template name of a default phase key, or the key itself.
func PhaseName(key string) string {
	for _, t := range DefaultPhases {
		if t.Key == key {
			return t.Name
		}
	}
	return key
}

// Day normalizes t to UTC midnight of the calendar date t shows in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculatePhaseDates lays the phases out back to back so that the last one ends on eventDate.
// Each phase spans Days calendar days inclusive. The result keeps the order of templates.
func CalculatePhaseDates(eventDate time.Time, templates []PhaseTemplate) (Phases, error) {
	seen := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		if t.Key == "" {
			return nil, ErrInvalidPhaseKey
		}
		if _, ok := seen[t.Key]; ok {
			return nil, fmt.Errorf("%w '%s'", ErrDuplicatePhaseKey, t.Key)
		}
		seen[t.Key] = struct{}{}
		if t.Days <= 0 {
			return nil, fmt.Errorf("%w: phase '%s' has %d days", ErrInvalidPhaseDuration, t.Key, t.Days)
		}
		if t.Days > MaxPhaseDays {
			return nil, fmt.Errorf("%w: phase '%s' has %d days, at most %d allowed",
				ErrInvalidPhaseDuration, t.Key, t.Days, MaxPhaseDays)
		}
	}

	phases := make(Phases, len(templates))
	anchor := Day(eventDate)
	for i := len(templates) - 1; i >= 0; i-- {
		end := anchor
		start := end.AddDate(0, 0, -(templates[i].Days - 1))
		phases[i] = Phase{Key: templates[i].Key, PhaseData: PhaseData{Start: start, End: end}}
		anchor = start.AddDate(0, 0, -1)
	}
	if err := phases.Validate(); err != nil {
		return nil, err
	}
	return phases, nil
}
