// Package jobs runs the bot's periodic background work on a cron schedule.
package jobs

import (
	"fmt"
	"runtime/debug"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs named jobs on cron specs such as "@every 15m".
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// Add registers fn under name. Adding a name twice replaces the old job.
func (s *Scheduler) Add(name, spec string, fn func()) error {
	id, err := s.cron.AddFunc(spec, wrap(name, fn))
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	if old, ok := s.jobs[name]; ok {
		s.cron.Remove(old)
	}
	s.jobs[name] = id
	log.WithFields(log.Fields{"job": name, "spec": spec}).Debug("[CRON] Job scheduled")
	return nil
}

// Len reports how many jobs are scheduled.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.WithField("jobs", len(s.jobs)).Info("Scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}

func wrap(name string, fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"job":   name,
					"panic": fmt.Sprintf("%v", r),
					"stack": string(debug.Stack()),
				}).Error("[CRON] Job panicked")
			}
		}()
		log.WithField("job", name).Debug("[CRON] Running job")
		fn()
	}
}
