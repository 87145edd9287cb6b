package notify

import (
	"sort"
	"time"

	"launchmaster/idgen"

	"github.com/fundwit/go-commons/types"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

type Level string

const (
	LevelSuccess = Level("success")
	LevelError   = Level("error")
)

const DefaultTTL = 30 * time.Second

type Notification struct {
	ID        types.ID  `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`

	Cause error `json:"-"`
}

/*
Handler is invoked synchronously for every notification published on a Feed.
*/
type Handler func(n *Notification)

// Feed keeps the user visible notifications of the last TTL, like toasts on a screen.
type Feed struct {
	items    *cache.Cache
	idWorker *sonyflake.Sonyflake
	handlers []Handler
}

func NewFeed(ttl time.Duration, handlers ...Handler) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{
		items:    cache.New(ttl, 2*ttl),
		idWorker: idgen.NewWorker(),
		handlers: handlers,
	}
}

func (f *Feed) Success(message string) {
	f.publish(&Notification{Level: LevelSuccess, Message: message})
}

func (f *Feed) Error(message string, cause error) {
	f.publish(&Notification{Level: LevelError, Message: message, Cause: cause})
}

func (f *Feed) publish(n *Notification) {
	n.ID = idgen.NextID(f.idWorker)
	n.Timestamp = time.Now()
	f.items.Set(n.ID.String(), *n, cache.DefaultExpiration)

	for _, handler := range f.handlers {
		handler(n)
	}
}

// Recent returns the live notifications, newest first.
func (f *Feed) Recent() []Notification {
	items := f.items.Items()
	result := make([]Notification, 0, len(items))
	for _, item := range items {
		if n, ok := item.Object.(Notification); ok {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result
}

func LogHandler(n *Notification) {
	entry := logrus.WithField("notification", n.ID.String())
	if n.Level == LevelError {
		entry.WithError(n.Cause).Error(n.Message)
		return
	}
	entry.Info(n.Message)
}
