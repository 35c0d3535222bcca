package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron"
)

type statusLister interface {
	ListStatuses(ctx context.Context) (map[string]bool, error)
}

type StatusPublisher interface {
	PublishStatus(phone string, isSubscribed bool)
}

// StatusWatcher polls the registry and publishes every subscription whose
// status changed since the previous poll. A phone missing from the registry
// counts as subscribed, so new active entries and removed entries are quiet.
type StatusWatcher struct {
	registry  statusLister
	publisher StatusPublisher
	interval  time.Duration
	cron      *cron.Cron

	mu   sync.Mutex
	last map[string]bool
}

func NewStatusWatcher(registry statusLister, publisher StatusPublisher, interval time.Duration) *StatusWatcher {
	return &StatusWatcher{
		registry:  registry,
		publisher: publisher,
		interval:  interval,
	}
}

// Start takes a first snapshot and schedules the polls.
func (w *StatusWatcher) Start() error {
	w.poll()

	c := cron.New()
	if err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), w.poll); err != nil {
		return fmt.Errorf("schedule status watcher: %w", err)
	}
	c.Start()
	w.cron = c
	return nil
}

func (w *StatusWatcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

func (w *StatusWatcher) poll() {
	if !w.mu.TryLock() {
		return
	}
	defer w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	statuses, err := w.registry.ListStatuses(ctx)
	if err != nil {
		log.Printf("status watcher: list statuses: %v", err)
		return
	}

	if w.last != nil {
		for phone, active := range statuses {
			if previous, ok := w.last[phone]; (ok && previous != active) || (!ok && !active) {
				w.publisher.PublishStatus(phone, active)
			}
		}
		for phone, previous := range w.last {
			if _, ok := statuses[phone]; !ok && !previous {
				w.publisher.PublishStatus(phone, true)
			}
		}
	}
	w.last = statuses
}
