package project

import (
	"launchmaster/domain/launch"
	"launchmaster/idgen"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// QueryProjectRecords returns all project rows, most recently created first.
func QueryProjectRecords(db *gorm.DB) ([]ProjectRecord, error) {
	records := []ProjectRecord{}
	if err := db.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// QueryPhaseRecords returns all phase rows in insertion order.
func QueryPhaseRecords(db *gorm.DB) ([]PhaseRecord, error) {
	records := []PhaseRecord{}
	if err := db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func GroupPhasesByProject(phases []PhaseRecord) map[types.ID][]PhaseRecord {
	groups := map[types.ID][]PhaseRecord{}
	for _, p := range phases {
		groups[p.ProjectID] = append(groups[p.ProjectID], p)
	}
	return groups
}

// AssembleProjects joins every project row with its phase group, keeping the order of records.
// Phase rows whose project is absent are ignored.
func AssembleProjects(records []ProjectRecord, groups map[types.ID][]PhaseRecord) []Project {
	projects := make([]Project, 0, len(records))
	for _, r := range records {
		group := groups[r.ID]
		phases := make(launch.Phases, 0, len(group))
		for _, p := range group {
			phases = append(phases, launch.Phase{Key: p.Name, PhaseData: launch.PhaseData{
				Start: launch.Day(p.StartDate), End: launch.Day(p.EndDate)}})
		}
		projects = append(projects, Project{
			ID:          r.ID,
			Name:        r.Name,
			Client:      deref(r.Client),
			Description: deref(r.Description),
			EventDate:   launch.Day(r.EventDate),
			Status:      r.Status,
			Phases:      phases,
			CreatedAt:   r.CreatedAt.UTC(),
		})
	}
	return projects
}

func buildPhaseRecords(projectID types.ID, phases launch.Phases, idWorker *sonyflake.Sonyflake) []PhaseRecord {
	records := make([]PhaseRecord, 0, len(phases))
	for _, p := range phases {
		data := launch.PhaseData{Start: launch.Day(p.Start), End: launch.Day(p.End)}
		records = append(records, PhaseRecord{
			ID:        idgen.NextID(idWorker),
			ProjectID: projectID,
			Name:      p.Key,
			StartDate: data.Start,
			EndDate:   data.End,
			Duration:  data.Duration(),
		})
	}
	return records
}

func insertPhaseRecords(tx *gorm.DB, records []PhaseRecord) error {
	for i := range records {
		if err := tx.Create(&records[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
