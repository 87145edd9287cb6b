package launch

import (
	"math"
	"time"
)

type Status string

const (
	StatusPlanning  = Status("planning")
	StatusActive    = Status("active")
	StatusCompleted = Status("completed")
)

var Statuses = []Status{StatusPlanning, StatusActive, StatusCompleted}

func (s Status) Valid() bool {
	return s == StatusPlanning || s == StatusActive || s == StatusCompleted
}

const (
	DefaultDateLayout = "Jan 02, 2006"

	NeutralPhaseColor  = "#6B7280"
	NeutralStatusColor = "bg-gray-100 text-gray-800"
)

type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusDisplays = map[Status]StatusDisplay{
	StatusPlanning:  {Label: "Planning", Color: "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-300"},
	StatusActive:    {Label: "Active", Color: "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-300"},
	StatusCompleted: {Label: "Completed", Color: "bg-gray-100 text-gray-800 dark:bg-gray-800 dark:text-gray-300"},
}

var phaseColors = map[string]string{
	"planning":    "#3B82F6",
	"acquisition": "#10B981",
	"warmup":      "#F59E0B",
	"event":       "#8B5CF6",
	"cart":        "#EC4899",
	"recovery":    "#F97316",
	"downsell":    "#EF4444",
	"debriefing":  "#6B7280",
}

// StatusInfo never fails: unknown statuses are labelled with the raw value in neutral gray.
func StatusInfo(status string) StatusDisplay {
	if d, ok := statusDisplays[Status(status)]; ok {
		return d
	}
	return StatusDisplay{Label: status, Color: NeutralStatusColor}
}

func PhaseColor(phaseKey string) string {
	if c, ok := phaseColors[phaseKey]; ok {
		return c
	}
	return NeutralPhaseColor
}

func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// DaysDifference counts calendar days between two dates, both ends included.
// The order of the arguments does not matter.
func DaysDifference(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff)/float64(day))) + 1
}
