package project

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"launchmaster/bizerror"
	"launchmaster/domain/launch"
	"launchmaster/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) *Store {
	db := testinfra.StartMysqlTestDatabase("launchmaster")
	*testDatabase = db
	Expect(AutoMigrate(db.DS)).To(BeNil())
	return NewStore(db.DS)
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func phaseIDs(s *Store, projectID types.ID) []types.ID {
	records := []PhaseRecord{}
	Expect(s.ds.GormDB(context.Background()).Where("project_id = ?", projectID).Order("id ASC").
		Find(&records).Error).To(BeNil())
	ids := []types.ID{}
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestStoreCreate(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should create project with phases and reload the snapshot", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		phases, err := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		Expect(err).To(BeNil())

		id, err := s.Create(context.Background(), &ProjectCreating{Name: " Summer Sale ", Client: "ACME",
			EventDate: time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC), Phases: phases})
		Expect(err).To(BeNil())
		Expect(id > 0).To(BeTrue())

		p, found := s.Get(id)
		Expect(found).To(BeTrue())
		Expect(time.Since(p.CreatedAt) < time.Minute).To(BeTrue())
		p.CreatedAt = time.Time{}
		Expect(p).To(Equal(Project{ID: id, Name: "Summer Sale", Client: "ACME", EventDate: date(2024, 6, 15),
			Status: launch.StatusPlanning, Phases: phases}))
		Expect(p.Phases.Keys()).To(Equal([]string{"planning", "acquisition", "warmup", "event", "cart", "recovery",
			"downsell", "debriefing"}))

		records := []PhaseRecord{}
		Expect(s.ds.GormDB(context.Background()).Where("project_id = ?", id).Order("id ASC").Find(&records).Error).To(BeNil())
		Expect(len(records)).To(Equal(8))
		Expect(records[0].Duration).To(Equal(29))
	})

	t.Run("should list most recent projects first", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		id1, err := s.Create(context.Background(), &ProjectCreating{Name: "first", EventDate: date(2024, 6, 15)})
		Expect(err).To(BeNil())
		id2, err := s.Create(context.Background(), &ProjectCreating{Name: "second", EventDate: date(2024, 6, 15),
			Status: launch.StatusActive})
		Expect(err).To(BeNil())

		list := s.List()
		Expect(len(list)).To(Equal(2))
		Expect(list[0].ID).To(Equal(id2))
		Expect(list[1].ID).To(Equal(id1))
		Expect(list[1].Phases).To(Equal(launch.Phases{}))
	})

	t.Run("should reject invalid creations without writing rows", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		_, err := s.Create(context.Background(), &ProjectCreating{Name: "x", EventDate: date(2024, 6, 15),
			Phases: launch.Phases{{Key: "event", PhaseData: launch.PhaseData{Start: date(2024, 6, 16), End: date(2024, 6, 15)}}}})
		Expect(err).To(HaveOccurred())
		var badParam *bizerror.ErrBadParam
		Expect(err).To(BeAssignableToTypeOf(badParam))

		_, err = s.Create(context.Background(), &ProjectCreating{Name: "  ", EventDate: date(2024, 6, 15)})
		Expect(err).To(HaveOccurred())

		_, err = s.Create(context.Background(), &ProjectCreating{Name: "x", EventDate: date(2024, 6, 15),
			Phases: launch.Phases{{Key: strings.Repeat("k", 65), PhaseData: launch.PhaseData{Start: date(2024, 6, 15), End: date(2024, 6, 15)}}}})
		Expect(err).To(BeAssignableToTypeOf(badParam))
		Expect(errors.Is(err, launch.ErrPhaseKeyTooLong)).To(BeTrue())

		count := 0
		Expect(s.ds.GormDB(context.Background()).Model(&ProjectRecord{}).Count(&count).Error).To(BeNil())
		Expect(count).To(BeZero())
	})

	t.Run("should roll back the project row when a phase insert fails", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		existing, err := s.Create(context.Background(), &ProjectCreating{Name: "existing", EventDate: date(2024, 6, 15)})
		Expect(err).To(BeNil())
		Expect(s.ds.GormDB(context.Background()).DropTable(&PhaseRecord{}).Error).To(BeNil())

		phases, _ := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		_, err = s.Create(context.Background(), &ProjectCreating{Name: "broken", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(HaveOccurred())

		records := []ProjectRecord{}
		Expect(s.ds.GormDB(context.Background()).Find(&records).Error).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0].ID).To(Equal(existing))

		list := s.List()
		Expect(len(list)).To(Equal(1))
		Expect(list[0].ID).To(Equal(existing))
	})
}

func TestStoreUpdate(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should update provided fields only", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		phases, _ := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		id, err := s.Create(context.Background(), &ProjectCreating{Name: "Summer Sale", Client: "ACME",
			Description: "big one", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(BeNil())
		before, _ := s.Get(id)
		ids := phaseIDs(s, id)

		status := launch.StatusActive
		Expect(s.Update(context.Background(), id, &ProjectUpdating{Status: &status})).To(BeNil())

		after, found := s.Get(id)
		Expect(found).To(BeTrue())
		Expect(after.Status).To(Equal(launch.StatusActive))
		after.Status = before.Status
		Expect(after).To(Equal(before))
		Expect(phaseIDs(s, id)).To(Equal(ids))

		empty := ""
		Expect(s.Update(context.Background(), id, &ProjectUpdating{Client: &empty})).To(BeNil())
		after, _ = s.Get(id)
		Expect(after.Client).To(BeEmpty())
		Expect(after.Description).To(Equal("big one"))
	})

	t.Run("should replace phases wholesale", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		phases, _ := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		id, err := s.Create(context.Background(), &ProjectCreating{Name: "Summer Sale", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(BeNil())
		ids := phaseIDs(s, id)

		replacement := launch.Phases{{Key: "event", PhaseData: launch.PhaseData{Start: date(2024, 7, 1), End: date(2024, 7, 3)}}}
		eventDate := date(2024, 7, 3)
		Expect(s.Update(context.Background(), id, &ProjectUpdating{Phases: &replacement, EventDate: &eventDate})).To(BeNil())

		p, _ := s.Get(id)
		Expect(p.Phases).To(Equal(replacement))
		Expect(p.EventDate).To(Equal(eventDate))
		newIDs := phaseIDs(s, id)
		Expect(len(newIDs)).To(Equal(1))
		Expect(ids).ToNot(ContainElement(newIDs[0]))
	})

	t.Run("should keep the stored fields when replacing phases fails", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		id, err := s.Create(context.Background(), &ProjectCreating{Name: "Summer Sale", EventDate: date(2024, 6, 15)})
		Expect(err).To(BeNil())
		Expect(s.ds.GormDB(context.Background()).DropTable(&PhaseRecord{}).Error).To(BeNil())

		name := "Winter Sale"
		replacement := launch.Phases{{Key: "event", PhaseData: launch.PhaseData{Start: date(2024, 7, 1), End: date(2024, 7, 3)}}}
		Expect(s.Update(context.Background(), id, &ProjectUpdating{Name: &name, Phases: &replacement})).To(HaveOccurred())

		record := ProjectRecord{}
		Expect(s.ds.GormDB(context.Background()).Where("id = ?", id).First(&record).Error).To(BeNil())
		Expect(record.Name).To(Equal("Summer Sale"))
		p, _ := s.Get(id)
		Expect(p.Name).To(Equal("Summer Sale"))
	})

	t.Run("should report not found for unknown project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		status := launch.StatusActive
		Expect(s.Update(context.Background(), 404, &ProjectUpdating{Status: &status})).To(Equal(bizerror.ErrNotFound))
	})
}

func TestStoreDelete(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should delete project and its phases", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		phases, _ := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		id1, err := s.Create(context.Background(), &ProjectCreating{Name: "a", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(BeNil())
		id2, err := s.Create(context.Background(), &ProjectCreating{Name: "b", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(BeNil())

		Expect(s.Delete(context.Background(), id1)).To(BeNil())
		_, found := s.Get(id1)
		Expect(found).To(BeFalse())
		Expect(phaseIDs(s, id1)).To(BeEmpty())
		Expect(len(phaseIDs(s, id2))).To(Equal(8))
		Expect(len(s.List())).To(Equal(1))
	})

	t.Run("should leave the list untouched on unknown id", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		id, err := s.Create(context.Background(), &ProjectCreating{Name: "a", EventDate: date(2024, 6, 15)})
		Expect(err).To(BeNil())

		Expect(s.Delete(context.Background(), id+1)).To(Equal(bizerror.ErrNotFound))
		Expect(len(s.List())).To(Equal(1))
	})
}

func TestStoreLoad(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should keep the snapshot when the caller is gone", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		_, err := s.Create(context.Background(), &ProjectCreating{Name: "a", EventDate: date(2024, 6, 15)})
		Expect(err).To(BeNil())
		Expect(s.ds.GormDB(context.Background()).Exec("DELETE FROM projects").Error).To(BeNil())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(s.Load(ctx)).To(HaveOccurred())
		Expect(len(s.List())).To(Equal(1))

		Expect(s.Load(context.Background())).To(BeNil())
		Expect(s.List()).To(BeEmpty())
	})

	t.Run("should hand out copies of the snapshot", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		s := setup(t, &testDatabase)

		phases, _ := launch.CalculatePhaseDates(date(2024, 6, 15), launch.DefaultTemplate())
		id, err := s.Create(context.Background(), &ProjectCreating{Name: "a", EventDate: date(2024, 6, 15), Phases: phases})
		Expect(err).To(BeNil())

		p, _ := s.Get(id)
		p.Phases[0].Start = date(2000, 1, 1)
		again, _ := s.Get(id)
		Expect(again.Phases[0].Start).To(Equal(date(2024, 3, 12)))
	})
}
