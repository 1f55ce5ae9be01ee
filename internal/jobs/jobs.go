package jobs

import (
	"context"
	"time"

	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/models"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrphanLister lists subjects without an admin profile.
type OrphanLister interface {
	Orphans(ctx context.Context) ([]models.User, error)
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// SweepOrphans logs every subject that signed up but has no admin profile.
// It never creates profiles; grant-admin is the remedy.
func SweepOrphans(ctx context.Context, lister OrphanLister, log *zap.Logger) ([]models.User, error) {
	users, err := lister.Orphans(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "sweep orphans")
	}
	for _, u := range users {
		log.Warn("subject without admin profile",
			zap.String("user_id", u.ID),
			zap.String("email", u.Email),
			zap.Time("created_at", u.CreatedAt),
		)
	}
	log.Info("orphan sweep done", zap.Int("orphans", len(users)))
	return users, nil
}

// Scheduler runs the periodic jobs.
type Scheduler struct {
	sched *cron.Cron
}

// Start schedules the orphan sweep on cfg.OrphanSweep. A disabled config
// yields a scheduler with no entries.
func Start(cfg config.JobsConfig, lister OrphanLister, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{sched: cron.New(cron.WithParser(cronParser))}
	if cfg.Enabled {
		_, err := s.sched.AddFunc(cfg.OrphanSweep, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := SweepOrphans(ctx, lister, log); err != nil {
				log.Error("orphan sweep failed", zap.Error(err))
			}
		})
		if err != nil {
			return nil, errors.Wrapf(err, "schedule orphan sweep %q", cfg.OrphanSweep)
		}
	}
	s.sched.Start()
	return s, nil
}

// Entries reports how many jobs are scheduled.
func (s *Scheduler) Entries() int { return len(s.sched.Entries()) }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}
