package app

import (
	"context"
	"time"

	"github.com/wellspring-app/core/internal/models"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	pkgcron "github.com/wellspring-app/core/internal/pkg/cron"
	"github.com/wellspring-app/core/internal/store"
	"go.uber.org/zap"
)

// changeDebounce is how long after the last data change the change-driven
// backup fires. Batched writes (a restore touches every section) coalesce
// into a single artifact.
const changeDebounce = 5 * time.Minute

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	cronLogger := a.logger.Named("CronService")

	a.sched.Register(pkgcron.Job{
		Name:        "auto_backup",
		Description: "write a backup artifact to the local backup directory",
		Interval:    time.Duration(a.cfg.Backup.IntervalMinutes) * time.Minute,
		Fn: func(ctx context.Context) error {
			if !a.autoBackupEnabled(ctx) {
				cronLogger.Info("auto backup is disabled, skipping")
				return nil
			}
			artifact, err := a.backupH.CreateLocalArtifact(ctx, time.Now())
			if err != nil {
				cronLogger.Warn("auto backup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("auto backup written", zap.String("filename", artifact.Filename))
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "prune_backups",
		Description: "remove local backup artifacts past the keep count",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			a.backupH.PruneArtifacts(a.cfg.Backup.KeepCount)
			return nil
		},
	})
}

// autoBackupEnabled merges the static config switch with the user-facing
// settings toggle. Either can turn the job off.
func (a *App) autoBackupEnabled(ctx context.Context) bool {
	if !a.cfg.Backup.AutoEnable {
		return false
	}
	settings, ok, err := store.Object[models.Settings](ctx, a.store, snapshot.SectionSettings)
	if err != nil || !ok {
		return true
	}
	return settings.AutoBackupEnabled
}

// watchDataChanges listens on the event bus and schedules a change-driven
// backup after writes settle.
func (a *App) watchDataChanges(ctx context.Context) {
	events := a.bus.Subscribe()
	logger := a.logger.Named("AutoBackup")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-events:
			if timer == nil {
				timer = time.NewTimer(changeDebounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(changeDebounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if !a.autoBackupEnabled(ctx) {
				continue
			}
			if artifact, err := a.backupH.CreateLocalArtifact(ctx, time.Now()); err != nil {
				logger.Warn("change-driven backup failed", zap.Error(err))
			} else {
				logger.Info("change-driven backup written", zap.String("filename", artifact.Filename))
			}
		}
	}
}
