// Package cronjobs schedules the background jobs the application runs
// alongside request handling — currently just the periodic rollup of
// credential usage stats onto their owning credential records.
package cronjobs

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shashank-sharma/backend/internal/logger"
)

// CronJob describes one scheduled task: a name for observability, the
// cron expression it runs on, and the function it invokes.
type CronJob struct {
	Name     string
	Schedule string
	Fn       func()

	entryID cron.EntryID
}

// Runner owns the cron scheduler and the set of registered jobs.
type Runner struct {
	c *cron.Cron

	mu   sync.RWMutex
	jobs []*CronJob
}

// NewRunner builds a Runner using the standard five-field parser (minute,
// hour, day of month, month, day of week), so schedules like "*/15 * * * *"
// read the same way operators expect from crontab. A seconds field is not
// accepted.
func NewRunner() *Runner {
	return &Runner{
		c: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
		))),
	}
}

// Register adds a job to the schedule. Call before Run.
func (r *Runner) Register(job *CronJob) error {
	id, err := r.c.AddFunc(job.Schedule, func() {
		logger.LogDebug("Running cron job: %s", job.Name)
		job.Fn()
	})
	if err != nil {
		return err
	}

	job.entryID = id

	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()

	return nil
}

// Run starts the scheduler in the background. Non-blocking.
func (r *Runner) Run() {
	logger.LogInfo("Starting cron scheduler")
	r.c.Start()
}

// Stop halts the scheduler, waiting for any in-flight job to finish.
func (r *Runner) Stop() {
	ctx := r.c.Stop()
	<-ctx.Done()
	logger.LogInfo("Cron scheduler stopped")
}

// GetActiveJobs returns the names and schedules of all registered jobs.
func (r *Runner) GetActiveJobs() []*CronJob {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*CronJob, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
