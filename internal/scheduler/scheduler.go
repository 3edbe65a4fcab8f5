// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

var (
	instance gocron.Scheduler
	once     sync.Once
	initErr  error
)

// Init creates the process-wide scheduler. Safe to call more than once;
// only the first call does anything.
func Init() error {
	once.Do(func() {
		s, err := gocron.NewScheduler()
		if err != nil {
			initErr = fmt.Errorf("creating scheduler: %w", err)
			return
		}
		instance = s
	})
	return initErr
}

// Get returns the scheduler, or nil if Init has not succeeded.
func Get() gocron.Scheduler {
	return instance
}

// Start begins running registered jobs.
func Start() {
	if instance == nil {
		log.Warn().Msg("Scheduler not initialized, skipping start")
		return
	}
	instance.Start()
	log.Info().Int("jobs", len(instance.Jobs())).Msg("Scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func Stop() {
	if instance == nil {
		return
	}
	if err := instance.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown failed")
	}
}
