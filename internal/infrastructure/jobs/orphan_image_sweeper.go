package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/metrics"
)

const (
	teamImagePrefix  = "team-images/"
	maxDeletesPerRun = 100
)

type memberLister interface {
	List(ctx context.Context) ([]*entities.TeamMember, error)
}

// OrphanImageSweeper removes team images that no member references anymore,
// such as files left behind by a failed best-effort delete.
type OrphanImageSweeper struct {
	members  memberLister
	store    repositories.ObjectStore
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	stop     chan struct{}
}

// NewOrphanImageSweeper builds the job. Objects younger than grace are kept
// so uploads whose record write is still in flight survive.
func NewOrphanImageSweeper(members memberLister, store repositories.ObjectStore, interval, grace time.Duration) *OrphanImageSweeper {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if grace <= 0 {
		grace = 24 * time.Hour
	}
	return &OrphanImageSweeper{
		members:  members,
		store:    store,
		interval: interval,
		grace:    grace,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *OrphanImageSweeper) Start(ctx context.Context) {
	logger.Info(ctx, "Starting orphan image sweeper", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Orphan image sweeper stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Orphan image sweeper stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

func (j *OrphanImageSweeper) Stop() {
	close(j.stop)
}

// Sweep runs one pass and returns the number of deleted objects.
func (j *OrphanImageSweeper) Sweep(ctx context.Context) int {
	members, err := j.members.List(ctx)
	if err != nil {
		logger.Error(ctx, "Orphan sweep skipped: listing team members failed", zap.Error(err))
		return 0
	}
	referenced := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.Image.Kind == entities.ImageStoreObject {
			referenced[m.Image.Value] = struct{}{}
		}
	}

	objects, err := j.store.List(ctx, teamImagePrefix)
	if err != nil {
		logger.Error(ctx, "Orphan sweep skipped: listing objects failed", zap.Error(err))
		return 0
	}

	cutoff := j.now().Add(-j.grace)
	deleted := 0
	for _, obj := range objects {
		if deleted >= maxDeletesPerRun {
			break
		}
		if _, ok := referenced[obj.Path]; ok || obj.LastModified.After(cutoff) {
			continue
		}
		if err := j.store.Delete(ctx, obj.Path); err != nil {
			metrics.ObjectDeletes.WithLabelValues("orphan", "failed").Inc()
			logger.Warn(ctx, "Failed to delete orphaned team image", zap.String("path", obj.Path), zap.Error(err))
			continue
		}
		metrics.ObjectDeletes.WithLabelValues("orphan", "deleted").Inc()
		deleted++
	}

	if deleted > 0 {
		logger.Info(ctx, "Orphaned team images deleted", zap.Int("count", deleted))
	}
	return deleted
}
