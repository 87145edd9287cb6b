package project

import (
	"sort"
	"time"

	"launchmaster/domain/launch"

	"github.com/fundwit/go-commons/types"
)

const DefaultUpcomingLimit = 3

type DashboardStats struct {
	Active    int `json:"active"`
	Planning  int `json:"planning"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type Dashboard struct {
	Stats    DashboardStats `json:"stats"`
	Upcoming []Project      `json:"upcoming"`
}

// BuildDashboard counts projects per status and picks the nearest events from today on.
func BuildDashboard(projects []Project, now time.Time, limit int) Dashboard {
	d := Dashboard{Upcoming: []Project{}}
	today := launch.Day(now)
	for _, p := range projects {
		switch p.Status {
		case launch.StatusActive:
			d.Stats.Active++
		case launch.StatusPlanning:
			d.Stats.Planning++
		case launch.StatusCompleted:
			d.Stats.Completed++
		}
		if !p.EventDate.Before(today) {
			d.Upcoming = append(d.Upcoming, p)
		}
	}
	d.Stats.Total = len(projects)

	sort.SliceStable(d.Upcoming, func(i, j int) bool {
		return d.Upcoming[i].EventDate.Before(d.Upcoming[j].EventDate)
	})
	if limit >= 0 && len(d.Upcoming) > limit {
		d.Upcoming = d.Upcoming[:limit]
	}
	return d
}

// TimelineRow is one bar of the launch Gantt chart.
type TimelineRow struct {
	ProjectID   types.ID      `json:"projectId"`
	ProjectName string        `json:"projectName"`
	Status      launch.Status `json:"status"`
	PhaseKey    string        `json:"phaseKey"`
	PhaseName   string        `json:"phaseName"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Days        int           `json:"days"`
	Color       string        `json:"color"`
}

func BuildTimeline(projects []Project) []TimelineRow {
	rows := []TimelineRow{}
	for _, p := range projects {
		for _, phase := range p.Phases {
			rows = append(rows, TimelineRow{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Status:      p.Status,
				PhaseKey:    phase.Key,
				PhaseName:   launch.PhaseName(phase.Key),
				Start:       phase.Start,
				End:         phase.End,
				Days:        launch.DaysDifference(phase.Start, phase.End),
				Color:       launch.PhaseColor(phase.Key),
			})
		}
	}
	return rows
}
