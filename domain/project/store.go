package project

import (
	"context"
	"sync"
	"time"

	"launchmaster/bizerror"
	"launchmaster/domain/launch"
	"launchmaster/idgen"
	"launchmaster/infra/metrics"
	"launchmaster/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// ReloadError reports a mutation that was committed while the snapshot refresh following it failed.
type ReloadError struct {
	Cause error
}

func (e *ReloadError) Error() string {
	return "reload projects: " + e.Cause.Error()
}
func (e *ReloadError) Unwrap() error {
	return e.Cause
}

// Store keeps the projects and phases tables and a snapshot of their content.
// Each mutation runs in one transaction and replaces the snapshot afterwards.
type Store struct {
	ds       *persistence.DataSourceManager
	idWorker *sonyflake.Sonyflake

	lock     sync.RWMutex
	projects []Project
	byID     map[types.ID]int
}

func NewStore(ds *persistence.DataSourceManager) *Store {
	return &Store{ds: ds, idWorker: idgen.NewWorker(), projects: []Project{}, byID: map[types.ID]int{}}
}

func AutoMigrate(ds *persistence.DataSourceManager) error {
	return ds.GormDB(context.Background()).AutoMigrate(&ProjectRecord{}, &PhaseRecord{}).Error
}

// Load replaces the snapshot with the current content of the database.
// The snapshot is left unchanged on failure, or when ctx is done before the rows are assembled.
func (s *Store) Load(ctx context.Context) error {
	db := s.ds.GormDB(ctx)
	records, err := QueryProjectRecords(db)
	if err != nil {
		return err
	}
	phases, err := QueryPhaseRecords(db)
	if err != nil {
		return err
	}
	projects := AssembleProjects(records, GroupPhasesByProject(phases))
	if err := ctx.Err(); err != nil {
		return err
	}

	byID := make(map[types.ID]int, len(projects))
	for i, p := range projects {
		byID[p.ID] = i
	}
	s.lock.Lock()
	s.projects, s.byID = projects, byID
	s.lock.Unlock()

	metrics.ProjectsLoaded.Set(float64(len(projects)))
	return nil
}

func (s *Store) Create(ctx context.Context, c *ProjectCreating) (types.ID, error) {
	if err := c.normalize(); err != nil {
		return 0, &bizerror.ErrBadParam{Cause: err}
	}

	record := ProjectRecord{
		ID:          idgen.NextID(s.idWorker),
		Name:        c.Name,
		Client:      nullable(c.Client),
		Description: nullable(c.Description),
		EventDate:   launch.Day(c.EventDate),
		Status:      c.Status,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return insertPhaseRecords(tx, buildPhaseRecords(record.ID, c.Phases, s.idWorker))
	})
	if err != nil {
		return 0, err
	}
	return record.ID, s.reload(ctx)
}

// Update writes the provided fields only. Provided phases replace the stored set as a whole.
func (s *Store) Update(ctx context.Context, id types.ID, u *ProjectUpdating) error {
	if err := u.normalize(); err != nil {
		return &bizerror.ErrBadParam{Cause: err}
	}

	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findProjectRecord(tx, id)
		if err != nil {
			return err
		}
		if changes := u.columns(); len(changes) > 0 {
			if err := tx.Model(record).Updates(changes).Error; err != nil {
				return err
			}
		}
		if u.Phases == nil {
			return nil
		}
		if err := tx.Where("project_id = ?", id).Delete(&PhaseRecord{}).Error; err != nil {
			return err
		}
		return insertPhaseRecords(tx, buildPhaseRecords(id, *u.Phases, s.idWorker))
	})
	if err != nil {
		return err
	}
	return s.reload(ctx)
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findProjectRecord(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&PhaseRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(record).Error
	})
	if err != nil {
		return err
	}
	return s.reload(ctx)
}

// Get looks id up in the last loaded snapshot, which may be stale.
func (s *Store) Get(id types.ID) (Project, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Project{}, false
	}
	return s.projects[i].clone(), true
}

func (s *Store) List() []Project {
	s.lock.RLock()
	defer s.lock.RUnlock()
	projects := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p.clone())
	}
	return projects
}

func (s *Store) reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return &ReloadError{Cause: err}
	}
	return nil
}

func findProjectRecord(tx *gorm.DB, id types.ID) (*ProjectRecord, error) {
	record := ProjectRecord{}
	if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}
