package cronjob

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/screentocode/screen-to-code-backend/internal/account/repository"
)

// Sweeper clears expired trial records from the in-memory store on a nightly
// schedule. The Redis and Postgres stores expire records on their own.
type Sweeper struct {
	store *repository.TrialMemoryRepository
	cron  *cron.Cron
}

func NewSweeper(store *repository.TrialMemoryRepository) *Sweeper {
	return &Sweeper{store: store}
}

// Start schedules the sweep at midnight.
func (s *Sweeper) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		removed := s.store.Sweep()
		log.Printf("[info] operation=trial_sweep removed=%d", removed)
	})
	if err != nil {
		log.Printf("Failed to create sweep cron job: %v", err)
		return
	}

	log.Println("Trial sweeper started (running nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop halts the schedule; running jobs finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
