package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"gorm.io/gorm"
)

const retention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than 30
// days. The returned channel is closed once the goroutine has exited after
// done was closed.
func StartCleanup(db *gorm.DB, done <-chan struct{}) <-chan struct{} {
	return startCleanup(db, 24*time.Hour, done)
}

func startCleanup(db *gorm.DB, every time.Duration, done <-chan struct{}) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := PurgeBefore(context.Background(), db, time.Now().Add(-retention))
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if n > 0 {
					slog.Info("log cleanup completed", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()
	return stopped
}

// PurgeBefore deletes the system logs written before cutoff.
func PurgeBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff.UTC()).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
