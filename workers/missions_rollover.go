// Package workers holds the background jobs that run beside the API.
package workers

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bilboko-doinuak/missions"
	"bilboko-doinuak/models"
)

// MissionsRollover clears stale daily-mission snapshots from the remote
// progress rows shortly after midnight. Clients regenerate missions lazily
// on their own, so this is housekeeping: it keeps rows of users who stopped
// playing from carrying yesterday's snapshot forever.
type MissionsRollover struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewMissionsRollover builds the rollover worker.
func NewMissionsRollover(db *gorm.DB, log *zap.Logger) *MissionsRollover {
	if log == nil {
		log = zap.NewNop()
	}
	return &MissionsRollover{DB: db, Log: log}
}

// Start schedules the hourly sweep. Returns the scheduler so the caller can
// shut it down.
func (w *MissionsRollover) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(w.sweep),
	)
	if err != nil {
		sched.Shutdown()
		return nil, err
	}
	return sched, nil
}

func (w *MissionsRollover) sweep() {
	today := missions.Today()

	result := w.DB.Model(&models.ProgressRecord{}).
		Where("daily_missions IS NOT NULL AND daily_missions->>'date' <> ?", today).
		Update("daily_missions", nil)
	if result.Error != nil {
		w.Log.Error("mission rollover sweep failed", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		w.Log.Info("cleared stale daily missions",
			zap.Int64("rows", result.RowsAffected),
			zap.String("date", today))
	}
}
