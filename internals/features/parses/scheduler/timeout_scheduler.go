package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"guildku_backend/internals/features/parses/service"
)

func StartParseTimeoutScheduler(db *gorm.DB) {
	go func() {
		// Batas umur job dari env (default: 30 menit)
		maxAgeMinutes := 30
		if val := os.Getenv("PARSE_JOB_TIMEOUT_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				maxAgeMinutes = parsed
			}
		}

		tracker := service.NewTrackerService(db)
		for {
			log.Println("[PARSE-SWEEP] Memeriksa parse job yang menggantung...")

			affected, err := tracker.SweepStale(time.Duration(maxAgeMinutes) * time.Minute)
			if err != nil {
				log.Printf("[PARSE-SWEEP ERROR] Gagal menandai timeout: %v", err)
			} else if affected > 0 {
				log.Printf("[PARSE-SWEEP] %d job ditandai timeout", affected)
			} else {
				log.Println("[PARSE-SWEEP] Tidak ada job yang menggantung")
			}

			// Jalankan tiap 5 menit
			time.Sleep(5 * time.Minute)
		}
	}()
}
