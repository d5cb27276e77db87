package snapshots

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Job records a net-worth snapshot for every user on a schedule.
type Job struct {
	service *Service
	timeout time.Duration
	log     zerolog.Logger
}

// NewJob creates the scheduled snapshot job
func NewJob(service *Service, log zerolog.Logger) *Job {
	return &Job{
		service: service,
		timeout: 5 * time.Minute,
		log:     log.With().Str("job", "net_worth_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *Job) Name() string {
	return "net_worth_snapshot"
}

// Run sweeps all users once, as of today. Per-user failures are
// collected and reported without stopping the sweep.
func (j *Job) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	failures, err := j.service.RecordAll(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return fmt.Errorf("snapshot failed for %d user(s)", len(failures))
	}
	return nil
}
