// file: internals/features/academy/schedules/service/scheduler.go
package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	"akademiku_backend/internals/configs"
)

// StartResyncScheduler: resync proyeksi penuh secara periodik supaya horizon
// bergulir tetap terisi walau tidak ada edit rule.
func StartResyncScheduler(db *gorm.DB) {
	go func() {
		intervalHours := configs.GetEnvInt("PROJECTION_RESYNC_INTERVAL_HOURS", 6)
		proj := NewProjector(db)

		for {
			log.Println("[RESYNC] Menjalankan proyeksi ulang semua jadwal aktif...")
			if err := proj.ResyncAll(); err != nil {
				// retryable: siklus berikut mengulang, proyeksi idempotent
				log.Printf("[RESYNC ERROR] %v", err)
			} else {
				log.Println("[RESYNC] Selesai.")
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
