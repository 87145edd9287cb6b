package project

import (
	"context"
	"errors"

	"launchmaster/infra/metrics"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

const (
	MessageLoadFailed    = "Failed to load projects"
	MessageCreated       = "Project created successfully"
	MessageCreateFailed  = "Failed to create project"
	MessageUpdated       = "Project updated successfully"
	MessageUpdateFailed  = "Failed to update project"
	MessageDeleted       = "Project deleted successfully"
	MessageDeleteFailed  = "Failed to delete project"
	OperationLoad        = "load"
	OperationCreate      = "create"
	OperationUpdate      = "update"
	OperationDelete      = "delete"
	indexWarningTemplate = "project %d: search index not updated"
)

type ProjectStore interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, c *ProjectCreating) (types.ID, error)
	Update(ctx context.Context, id types.ID, u *ProjectUpdating) error
	Delete(ctx context.Context, id types.ID) error
	Get(id types.ID) (Project, bool)
	List() []Project
}

// Notifier receives the user visible outcome of store operations.
type Notifier interface {
	Success(message string)
	Error(message string, cause error)
}

type Indexer interface {
	IndexProject(ctx context.Context, p Project) error
	RemoveProject(ctx context.Context, id types.ID) error
}

// Service turns store results into notifications, metrics and search index updates.
// The store itself stays free of those effects.
type Service struct {
	store    ProjectStore
	notifier Notifier
	indexer  Indexer
}

// NewService builds a service, indexer may be nil when search is disabled.
func NewService(store ProjectStore, notifier Notifier, indexer Indexer) *Service {
	return &Service{store: store, notifier: notifier, indexer: indexer}
}

func (s *Service) Projects() []Project {
	return s.store.List()
}

func (s *Service) GetProject(id types.ID) (Project, bool) {
	return s.store.Get(id)
}

func (s *Service) LoadProjects(ctx context.Context) error {
	err := s.store.Load(ctx)
	metrics.RecordStoreOperation(OperationLoad, err)
	if err != nil {
		logrus.WithError(err).Warn("load projects failed")
		s.notifier.Error(MessageLoadFailed, err)
	}
	return err
}

// AddProject creates a project and returns its id. Failures are notified and returned.
func (s *Service) AddProject(ctx context.Context, c *ProjectCreating) (types.ID, error) {
	id, err := s.store.Create(ctx, c)
	if err = s.settle(OperationCreate, err, MessageCreated, MessageCreateFailed); err != nil {
		return 0, err
	}
	s.index(ctx, id)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id types.ID, u *ProjectUpdating) error {
	err := s.store.Update(ctx, id, u)
	if err = s.settle(OperationUpdate, err, MessageUpdated, MessageUpdateFailed); err != nil {
		return err
	}
	s.index(ctx, id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	err := s.store.Delete(ctx, id)
	if err = s.settle(OperationDelete, err, MessageDeleted, MessageDeleteFailed); err != nil {
		return err
	}
	if s.indexer != nil {
		if err := s.indexer.RemoveProject(ctx, id); err != nil {
			logrus.WithError(err).Warnf(indexWarningTemplate, id)
		}
	}
	return nil
}

// UpdateProject reports the outcome of Update as a boolean, the failure has been notified already.
func (s *Service) UpdateProject(ctx context.Context, id types.ID, u *ProjectUpdating) bool {
	return s.Update(ctx, id, u) == nil
}

func (s *Service) DeleteProject(ctx context.Context, id types.ID) bool {
	return s.Delete(ctx, id) == nil
}

// settle notifies the outcome of a mutation. A committed mutation whose reload failed counts as
// a success followed by a load failure.
func (s *Service) settle(operation string, err error, success, failure string) error {
	var reloadErr *ReloadError
	if errors.As(err, &reloadErr) {
		metrics.RecordStoreOperation(operation, nil)
		s.notifier.Success(success)

		metrics.RecordStoreOperation(OperationLoad, reloadErr.Cause)
		logrus.WithError(reloadErr.Cause).Warn("reload projects failed")
		s.notifier.Error(MessageLoadFailed, reloadErr.Cause)
		return nil
	}

	metrics.RecordStoreOperation(operation, err)
	if err != nil {
		logrus.WithError(err).Warnf("%s project failed", operation)
		s.notifier.Error(failure, err)
		return err
	}
	s.notifier.Success(success)
	return nil
}

func (s *Service) index(ctx context.Context, id types.ID) {
	if s.indexer == nil {
		return
	}
	p, ok := s.store.Get(id)
	if !ok {
		return
	}
	if err := s.indexer.IndexProject(ctx, p); err != nil {
		logrus.WithError(err).Warnf(indexWarningTemplate, id)
	}
}
