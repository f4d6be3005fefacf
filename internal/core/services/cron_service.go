package services

import (
	"context"
	"log"
	"time"

	"medbridge/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs. Currently a nightly sweep
// that rejects unclaimed listings whose expiry date has passed.
type CronService struct {
	medicineRepo repositories.MedicineRepository
	cron         *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(medicineRepo repositories.MedicineRepository) *CronService {
	return &CronService{
		medicineRepo: medicineRepo,
		cron:         cron.New(),
	}
}

// Start schedules the jobs (expiry sweep at 02:30 daily)
func (s *CronService) Start() {
	s.cron.AddFunc("30 2 * * *", s.sweepExpired)
	s.cron.Start()
	log.Println("🚀 CronService started (expiry sweep 02:30 daily)")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

// sweepExpired rejects pending/approved listings past their expiry date
func (s *CronService) sweepExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	affected, err := s.medicineRepo.RejectExpired(ctx)
	if err != nil {
		log.Printf("⚠️ Expiry sweep failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("✅ Expiry sweep rejected %d expired listings", affected)
	}
}
