package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
)

// CleanupJob reclaims Postgres rows past their retention windows. Session
// eviction is not handled here: the keyed store expires sessions by TTL.
type CleanupJob struct {
	feedbackRepo        repository.FeedbackRepository
	messageLogRepo      repository.MessageLogRepository
	feedbackRetention   time.Duration
	messageLogRetention time.Duration
	interval            time.Duration
	done                chan struct{}
}

func NewCleanupJob(
	feedbackRepo repository.FeedbackRepository,
	messageLogRepo repository.MessageLogRepository,
	feedbackRetention time.Duration,
	messageLogRetention time.Duration,
	interval time.Duration,
) *CleanupJob {
	return &CleanupJob{
		feedbackRepo:        feedbackRepo,
		messageLogRepo:      messageLogRepo,
		feedbackRetention:   feedbackRetention,
		messageLogRetention: messageLogRetention,
		interval:            interval,
		done:                make(chan struct{}),
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

	now := time.Now()
	j.runCleanup(ctx, "feedback records", func(ctx context.Context) (int64, error) {
		return j.feedbackRepo.DeleteBefore(ctx, now.Add(-j.feedbackRetention))
	})
	j.runCleanup(ctx, "message log", func(ctx context.Context) (int64, error) {
		return j.messageLogRepo.DeleteBefore(ctx, now.Add(-j.messageLogRetention))
	})
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
