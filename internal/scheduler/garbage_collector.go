package scheduler

import (
	"context"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
)

const (
	// DefaultGCThreshold is how long rejected submissions and hidden
	// reviews linger before deletion.
	DefaultGCThreshold = 30 * 24 * time.Hour
)

// GarbageCollector prunes moderation leftovers from the store: rejected
// submissions and hidden reviews past the age threshold.
type GarbageCollector struct {
	store         store.Adapter
	logger        logger.Logger
	interval      time.Duration
	threshold     time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewGarbageCollector(
	adapter store.Adapter,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
	manualTrigger chan struct{},
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:         adapter,
		logger:        log,
		interval:      interval,
		threshold:     threshold,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs a sweep immediately, then on the ticker or a manual trigger.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.manualTrigger:
				gc.logger.Info("manual garbage collection triggered")
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector.
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect deletes rejected submissions and hidden reviews older than the
// threshold. Deletes are per-record and best effort.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	now := gc.now()

	rejected := gc.sweep(ctx, domain.CollectionSubmissions,
		store.Filters{"status": domain.StatusRejected}, now)
	hidden := gc.sweep(ctx, domain.CollectionReviews,
		store.Filters{"visible": "false"}, now)

	if rejected+hidden > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("submissions_deleted", rejected),
			logger.Int("reviews_deleted", hidden))
	} else {
		gc.logger.Debug("no records to garbage collect")
	}
	return nil
}

// sweep deletes matching records whose last update predates the threshold.
func (gc *GarbageCollector) sweep(ctx context.Context, collection string, filters store.Filters, now time.Time) int {
	recs, err := gc.store.Get(ctx, collection, filters)
	if err != nil {
		gc.logger.Warn("garbage collection read failed",
			logger.String("collection", collection), logger.Error(err))
		return 0
	}

	deleted := 0
	for _, rec := range recs {
		age := recordAge(rec, now)
		if age < gc.threshold {
			continue
		}
		id, _ := rec["id"].(string)
		if id == "" {
			continue
		}
		if err := gc.store.Delete(ctx, collection, id); err != nil {
			gc.logger.Warn("garbage collection delete failed",
				logger.String("collection", collection),
				logger.String("id", id),
				logger.Error(err))
			continue
		}
		gc.logger.Info("garbage collected record",
			logger.String("collection", collection),
			logger.String("id", id),
			logger.String("age", age.String()))
		deleted++
	}
	return deleted
}

// recordAge measures from updatedAt when present, else createdAt. Records
// with no parsable timestamp never age out.
func recordAge(rec store.Record, now time.Time) time.Duration {
	for _, key := range []string{"updatedAt", "createdAt"} {
		raw, ok := rec[key].(string)
		if !ok || raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return now.Sub(ts)
		}
	}
	return 0
}
