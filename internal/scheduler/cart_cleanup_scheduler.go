package scheduler

import (
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler purges carts that have not been touched for the
// configured period.
type CartCleanupScheduler struct {
	cron       *cron.Cron
	cartRepo   repository.CartRepository
	staleAfter time.Duration
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository, staleAfter time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:       cron.New(),
		cartRepo:   cartRepo,
		staleAfter: staleAfter,
	}
}

// Start schedules the purge to run daily at 03:00.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().Add(-s.staleAfter)
		logger.Info("Starting scheduled stale cart cleanup", map[string]interface{}{
			"cutoff": cutoff,
		})

		removed, err := s.cartRepo.DeleteStale(cutoff)
		if err != nil {
			logger.Error("Failed to purge stale carts", err)
			return
		}

		logger.Info("Stale cart cleanup finished", map[string]interface{}{
			"removed": removed,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 3:00 AM)", map[string]interface{}{
		"stale_after": s.staleAfter.String(),
	})
	return nil
}

func (s *CartCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped")
}
