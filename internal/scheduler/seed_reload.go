package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoval/markd/internal/domain"
	"github.com/mkoval/markd/internal/logger"
	"github.com/mkoval/markd/internal/sources/seedfile"
)

// SeedStore is the slice of the storage layer the seed reloader needs.
type SeedStore interface {
	All(ctx context.Context) ([]*domain.Bookmark, error)
	Create(ctx context.Context, input domain.CreateInput) (*domain.Bookmark, error)
}

// SeedReloader periodically re-reads a YAML seed file and creates any
// bookmark whose URL is not yet in the store. Existing bookmarks are
// never modified; the store stays the source of truth for everything
// the user has touched.
type SeedReloader struct {
	loader        *seedfile.Loader
	mapper        *seedfile.Mapper
	store         SeedStore
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewSeedReloader(
	seedFile string,
	store SeedStore,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seedfile.NewLoader(seedFile),
		mapper:        seedfile.NewMapper(),
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the seed file immediately, then re-checks it at the
// configured interval.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed load failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

// Reload reads the seed file and creates bookmarks for unseen URLs.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	f, err := sr.loader.Load()
	if err != nil {
		return err
	}

	inputs, err := sr.mapper.Map(f)
	if err != nil {
		return err
	}

	existing, err := sr.store.All(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, bm := range existing {
		seen[bm.URL] = true
	}

	created := 0
	for _, input := range inputs {
		if seen[input.URL] {
			continue
		}
		if _, err := sr.store.Create(ctx, input); err != nil {
			sr.logger.Warn("failed to create seeded bookmark",
				logger.String("url", input.URL),
				logger.Error(err))
			continue
		}
		seen[input.URL] = true
		created++
	}

	if created > 0 {
		sr.logger.Info("seed file loaded",
			logger.Int("entries", len(inputs)),
			logger.Int("created", created))
	} else {
		sr.logger.Debug("seed file loaded, nothing new",
			logger.Int("entries", len(inputs)))
	}

	return nil
}
