package updater

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"mediaflow-iptv/catalog"
	"mediaflow-iptv/logger"
	"mediaflow-iptv/utils"
)

// Updater drives periodic catalog rebuilds. A single instance runs per
// process; the embedded mutex guarantees cycles never overlap even when a
// cron tick fires while a manual refresh is in flight.
type Updater struct {
	sync.Mutex
	ctx     context.Context
	builder *catalog.Builder
	cache   *catalog.Cache
	logger  logger.Logger
	Cron    *cron.Cron
}

// Initialize wires the refresh schedule and, unless disabled, runs one
// synchronous build before returning so the process starts serving with a
// fresh catalog.
func Initialize(ctx context.Context, builder *catalog.Builder, cache *catalog.Cache, l logger.Logger) (*Updater, error) {
	instance := &Updater{
		ctx:     ctx,
		builder: builder,
		cache:   cache,
		logger:  l,
	}

	sched := utils.GetEnv("REFRESH_CRON")
	c := cron.New()
	_, err := c.AddFunc(sched, func() {
		go instance.RefreshChannels(ctx)
	})
	if err != nil {
		l.Errorf("Error initializing refresh schedule %q: %v", sched, err)
		return nil, err
	}
	c.Start()
	instance.Cron = c

	if utils.GetEnv("REFRESH_ON_BOOT") == "true" {
		l.Log("REFRESH_ON_BOOT enabled. Building initial channel catalog.")
		instance.RefreshChannels(ctx)
	}

	return instance, nil
}

// Stop halts the schedule. A cycle already running completes on its own.
func (instance *Updater) Stop() {
	if instance.Cron != nil {
		instance.Cron.Stop()
	}
}

// RefreshChannels runs one refresh cycle and logs the outcome. Every
// failure is swallowed: a bad cycle leaves the prior catalog and cache in
// effect and never stops future cycles.
func (instance *Updater) RefreshChannels(ctx context.Context) {
	cycle := uuid.NewString()[:8]

	select {
	case <-ctx.Done():
		instance.logger.Debugf("Background process: refresh cycle %s cancelled before start", cycle)
		return
	default:
	}

	instance.logger.Logf("Background process: Starting channel refresh cycle %s", cycle)
	if err := instance.Refresh(ctx); err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			instance.logger.Logf("Background process: Cycle %s skipped, proxy configuration missing or incomplete", cycle)
			return
		}
		instance.logger.Errorf("Background process: Error in refresh cycle %s: %v", cycle, err)
		return
	}
	instance.logger.Logf("Background process: Finished channel refresh cycle %s", cycle)
}

// Refresh rebuilds the catalog once and invalidates the cache on success.
// The error is reported to the caller; persisted state from the previous
// successful build is retained on failure.
func (instance *Updater) Refresh(ctx context.Context) error {
	instance.Lock()
	defer instance.Unlock()

	records, err := instance.builder.Build(ctx)
	if err != nil {
		return err
	}

	instance.cache.Invalidate()
	instance.logger.Debugf("Catalog rebuilt with %d channels, cache invalidated", len(records))
	return nil
}
