package scheduler

import (
	"context"
	"time"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
)

// DefaultCheckInterval is the reminder poll period. The due-evaluation
// grace window is sized to it, so shortening one without the other
// widens the duplicate-fire risk.
const DefaultCheckInterval = 60 * time.Second

// Store is the slice of the storage layer the checker reads from.
type Store interface {
	Candidates(ctx context.Context) ([]*domain.Bookmark, error)
}

// Notifier receives each due bookmark.
type Notifier interface {
	Notify(ctx context.Context, bm *domain.Bookmark)
}

// Checker is the periodic reminder loop: each tick it pulls the
// candidate bookmarks, evaluates due-ness against the current wall
// clock and dispatches fires to the notifier. It persists nothing
// itself; last_reminded is only stamped when the user completes the
// reminder, so a fire can repeat on consecutive ticks inside one grace
// window. That duplicate risk is accepted; the dedup key stays the
// local calendar day.
type Checker struct {
	store         Store
	notifier      Notifier
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewChecker creates a reminder checker. manualTrigger may be nil when
// no on-demand checks are needed.
func NewChecker(
	store Store,
	notifier Notifier,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Checker {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Checker{
		store:         store,
		notifier:      notifier,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one check immediately, then ticks at the configured
// period until Stop is called or ctx is cancelled. Per-tick failures
// are logged and the loop retries on the next tick.
func (c *Checker) Start(ctx context.Context) error {
	if err := c.Check(ctx); err != nil {
		c.logger.Warn("initial reminder check failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.Check(ctx); err != nil {
					c.logger.Error("reminder check failed",
						logger.Error(err))
				}
			case <-c.manualTrigger:
				c.logger.Info("manual reminder check triggered")
				if err := c.Check(ctx); err != nil {
					c.logger.Error("reminder check failed",
						logger.Error(err))
				}
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the checker loop.
func (c *Checker) Stop() {
	close(c.stopCh)
}

// Check runs one tick: evaluate every candidate against the current
// time and notify the due ones. A failure local to one bookmark never
// aborts the remaining candidates; only a storage failure surfaces.
func (c *Checker) Check(ctx context.Context) error {
	candidates, err := c.store.Candidates(ctx)
	if err != nil {
		return err
	}

	now := c.now()
	fired := 0
	for _, bm := range candidates {
		if !domain.Due(now, bm.Reminder) {
			continue
		}
		c.logger.Info("reminder due",
			logger.Int64("bookmark_id", bm.ID),
			logger.String("title", bm.Title))
		c.notifier.Notify(ctx, bm)
		fired++
	}

	if fired > 0 {
		c.logger.Info("reminder check completed",
			logger.Int("candidates", len(candidates)),
			logger.Int("fired", fired))
	} else {
		c.logger.Debug("reminder check completed, nothing due",
			logger.Int("candidates", len(candidates)))
	}

	return nil
}
