package dashboard

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
)

var ErrClockStarted = errors.New("clock already started")

// Clock delivers wall-clock ticks until stopped.
type Clock interface {
	Start(onTick func(time.Time)) error
	Stop()
}

// CronClock ticks from a gocron scheduler. It cannot be restarted once stopped.
type CronClock struct {
	interval time.Duration

	mu        sync.Mutex
	scheduler *gocron.Scheduler
	stopped   atomic.Bool
}

func NewCronClock(interval time.Duration) *CronClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &CronClock{interval: interval}
}

func (c *CronClock) Start(onTick func(time.Time)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scheduler != nil || c.stopped.Load() {
		return ErrClockStarted
	}

	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()
	if _, err := s.Every(c.interval).Do(func() {
		if c.stopped.Load() {
			return
		}
		onTick(time.Now())
	}); err != nil {
		return err
	}
	s.StartAsync()
	c.scheduler = s
	return nil
}

// Stop halts the scheduler and waits for a running tick to return. Jobs
// firing after Stop deliver nothing.
func (c *CronClock) Stop() {
	if c.stopped.Swap(true) {
		return
	}
	c.mu.Lock()
	s := c.scheduler
	c.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}
