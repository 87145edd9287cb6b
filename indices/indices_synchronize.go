package indices

import (
	"context"
	"fmt"
	"sync"

	"launchmaster/client/es"
	"launchmaster/domain/project"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	lock    sync.Mutex
	running bool

	SynchronizeFunc        = Synchronize
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun

	syncLimiter = rate.NewLimiter(rate.Limit(20), 5)
)

// Synchronize indexes every project, throttled by limiter. It stops when ctx is done.
func Synchronize(ctx context.Context, projects []project.Project, limiter *rate.Limiter) (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			e, ok := ret.(error)
			if ok {
				err = e
			} else {
				err = fmt.Errorf("error on indices full sync: %v", ret)
			}
		}
	}()

	err = IndexProjects(ctx, projects, limiter)
	if errs, ok := err.(BatchActionError); ok {
		logrus.Infof("indices sync: %d projects, %d failures", len(projects), len(errs))
		return errs
	}
	if err == nil {
		logrus.Infof("indices sync: %d projects indexed", len(projects))
	}
	return err
}

// ScheduleNewSyncRun starts a full synchronization in the background unless one is running already.
func ScheduleNewSyncRun(projects []project.Project) (bool, error) {
	if es.ActiveESClient == nil {
		return false, errSearchDisabled
	}

	lock.Lock()
	if running {
		lock.Unlock()
		return false, nil
	}
	running = true
	lock.Unlock()

	waitRunning := sync.WaitGroup{}
	waitRunning.Add(1)
	go func() {
		waitRunning.Done()
		defer func() {
			lock.Lock()
			running = false
			lock.Unlock()
		}()
		if err := SynchronizeFunc(context.Background(), projects, syncLimiter); err != nil {
			logrus.Warnf("indices sync: %v", err)
		}
	}()
	waitRunning.Wait()
	return true, nil
}
