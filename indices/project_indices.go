package indices

import (
	"context"
	"fmt"

	"launchmaster/client/es"
	"launchmaster/domain/project"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	ProjectIndexName = "launch_projects"
)

type ProjectDocument struct {
	project.Project
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

// ProjectIndexer keeps the search index in step with store mutations.
type ProjectIndexer struct{}

func (ProjectIndexer) IndexProject(ctx context.Context, p project.Project) error {
	if err := es.IndexFunc(ctx, ProjectIndexName, p.ID, ProjectDocument{Project: p}); err != nil {
		return err
	}
	logrus.Debugf("index project %d %s successfully", p.ID, p.Name)
	return nil
}

func (ProjectIndexer) RemoveProject(ctx context.Context, id types.ID) error {
	return es.DeleteDocumentByIdFunc(ctx, ProjectIndexName, id)
}

// IndexProjects indexes every project and collects per document failures.
// A non nil limiter throttles the requests, its wait error ends the batch.
func IndexProjects(ctx context.Context, projects []project.Project, limiter *rate.Limiter) error {
	errs := BatchActionError{}
	indexer := ProjectIndexer{}
	for _, p := range projects {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := indexer.IndexProject(ctx, p); err != nil {
			errs[p.ID] = err
			logrus.Warnf("index project %d %s %s", p.ID, p.Name, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
