package tasks

import (
	"context"
	"time"

	"github.com/osa911/folio/internal/logging"
)

// FormSweeper closes contact forms that have been idle for too long
type FormSweeper interface {
	Sweep(ttl time.Duration) int
}

// FormCleanup handles periodic cleaning of abandoned contact forms
type FormCleanup struct {
	forms    FormSweeper
	ttl      time.Duration
	interval time.Duration
	logger   *logging.Logger
	done     chan struct{}
}

// DefaultSweepInterval is used when no positive interval is configured
const DefaultSweepInterval = 5 * time.Minute

// NewFormCleanup creates a new form cleanup task
func NewFormCleanup(forms FormSweeper, ttl, interval time.Duration) *FormCleanup {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &FormCleanup{
		forms:    forms,
		ttl:      ttl,
		interval: interval,
		logger:   logging.GetGlobalLogger(),
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background. It stops when ctx is done.
func (fc *FormCleanup) Start(ctx context.Context) {
	go fc.runPeriodically(ctx)
}

// Done is closed once the background loop has exited
func (fc *FormCleanup) Done() <-chan struct{} {
	return fc.done
}

func (fc *FormCleanup) runPeriodically(ctx context.Context) {
	defer close(fc.done)

	ticker := time.NewTicker(fc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fc.cleanup()
		}
	}
}

func (fc *FormCleanup) cleanup() {
	if n := fc.forms.Sweep(fc.ttl); n > 0 {
		fc.logger.Info("Closed %d idle contact forms", n)
	}
}
