package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// CatalogSyncFunc refreshes the catalog and reports how many entries were written.
type CatalogSyncFunc func(ctx context.Context) (int, error)

// StartScheduler registers the background jobs and starts the scheduler. Either job may be
// nil when its feature is not configured. The caller owns Shutdown.
func StartScheduler(ctx context.Context, archiver *BattleArchiver, syncCatalog CatalogSyncFunc, syncInterval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	if syncCatalog != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(syncInterval),
			gocron.NewTask(func() {
				if _, err := syncCatalog(ctx); err != nil {
					log.Printf("❌ [SCHEDULER] Catalog sync failed: %v", err)
				}
			}),
			gocron.WithName("catalog-sync"),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = sched.Shutdown()
			return nil, err
		}
		log.Printf("✅ [SCHEDULER] Catalog sync every %s", syncInterval)
	}

	if archiver != nil {
		// Shortly after midnight UTC, once the previous day is closed.
		_, err = sched.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 10, 0))),
			gocron.NewTask(func() {
				if _, err := archiver.ArchiveYesterday(ctx); err != nil {
					log.Printf("❌ [SCHEDULER] Battle archive failed: %v", err)
				}
			}),
			gocron.WithName("battle-archive"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = sched.Shutdown()
			return nil, err
		}
		log.Println("✅ [SCHEDULER] Nightly battle archive at 00:10 UTC")
	}

	sched.Start()
	return sched, nil
}
