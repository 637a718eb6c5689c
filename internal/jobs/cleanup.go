package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/helmdesk/ops-server-go/internal/repository"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

// CleanupJob deletes expired portal sessions. It runs under the
// background-worker audience through the Propagator like any other unit of
// work: the worker role's policy on portal_sessions is what lets it see
// sessions across tenants, not a bypass of the isolation layer.
type CleanupJob struct {
	runner      tenancy.Runner
	sessionRepo repository.PortalSessionRepository
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(
	runner tenancy.Runner,
	sessionRepo repository.PortalSessionRepository,
	interval time.Duration,
) *CleanupJob {
	return &CleanupJob{
		runner:      runner,
		sessionRepo: sessionRepo,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var count int64
	err := j.runner.Run(ctx, tenancy.WorkerContext(""), func(q tenancy.Querier) error {
		var err error
		count, err = j.sessionRepo.DeleteExpired(ctx, q)
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cleanup portal sessions")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("cleaned up portal sessions")
	}
}
