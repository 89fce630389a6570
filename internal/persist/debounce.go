// Package persist provides the debounced flush used to push in-memory
// state to durable storage. Persistence is a best-effort side channel:
// a failed flush is logged and the next trigger retries, the in-memory
// state stays authoritative.
package persist

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Debouncer coalesces bursts of triggers into one flush after a quiet
// interval, like the original UI saved its collections.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	flush  func() error
	logger *zap.Logger
}

func NewDebouncer(delay time.Duration, flush func() error, logger *zap.Logger) *Debouncer {
	return &Debouncer{delay: delay, flush: flush, logger: logger}
}

// Trigger schedules a flush after the quiet interval, resetting any
// pending schedule.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.run)
}

func (d *Debouncer) run() {
	if err := d.flush(); err != nil {
		d.logger.Warn("debounced flush failed", zap.Error(err))
	}
}

// Flush runs a pending flush immediately, used on shutdown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.run()
}
