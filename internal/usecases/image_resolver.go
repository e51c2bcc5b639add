package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/metrics"
)

// defaultResolveWorkers caps lookups in flight for one ResolveAll call.
const defaultResolveWorkers = 32

// ImageResolver turns stored image references into displayable URLs.
type ImageResolver struct {
	store    repositories.ObjectStore
	cache    repositories.URLCache
	basePath string
	ttl      time.Duration
	workers  int
}

// NewImageResolver builds a resolver. store and cache may be nil; without a
// store every object reference resolves to the no-storage sentinel.
func NewImageResolver(
	store repositories.ObjectStore,
	cache repositories.URLCache,
	basePath string,
	ttl time.Duration,
	workers int,
) *ImageResolver {
	if workers <= 0 {
		workers = defaultResolveWorkers
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ImageResolver{
		store:    store,
		cache:    cache,
		basePath: basePath,
		ttl:      ttl,
		workers:  workers,
	}
}

// Resolve never fails: lookup problems come back as sentinels.
func (r *ImageResolver) Resolve(ctx context.Context, ref entities.ImageRef) string {
	url, result := r.resolve(ctx, ref)
	metrics.ImageResolutions.WithLabelValues(result).Inc()
	return url
}

func (r *ImageResolver) resolve(ctx context.Context, ref entities.ImageRef) (string, string) {
	switch ref.Kind {
	case entities.ImageNone:
		return entities.ImagePlaceholder, entities.ImagePlaceholder
	case entities.ImageAbsolute:
		return ref.Value, "absolute"
	case entities.ImageRootRelative:
		return r.basePath + ref.Value, "root_relative"
	}

	if r.store == nil {
		return entities.ImageNoStorage, entities.ImageNoStorage
	}
	if r.cache != nil {
		if url, ok := r.cache.Get(ctx, ref.Value); ok {
			return url, "cached"
		}
	}

	url, err := r.store.SignedURL(ctx, ref.Value, r.ttl)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "Team image not found in object store", zap.String("path", ref.Value))
			return entities.ImageNotFound, entities.ImageNotFound
		}
		logger.Error(ctx, "Failed to resolve team image", zap.String("path", ref.Value), zap.Error(err))
		return entities.ImageError, entities.ImageError
	}
	if r.cache != nil {
		r.cache.Set(ctx, ref.Value, url, r.ttl-r.ttl/5)
	}
	return url, "signed"
}

// ResolveAll resolves every member concurrently and returns display URLs
// keyed by member id. The pool grows with the roster up to the worker cap,
// so a roster within the cap costs one round of lookups.
func (r *ImageResolver) ResolveAll(ctx context.Context, members []*entities.TeamMember) map[string]string {
	out := make(map[string]string, len(members))
	if len(members) == 0 {
		return out
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(min(len(members), r.workers))
	for _, m := range members {
		m := m
		p.Go(func() {
			url := r.Resolve(ctx, m.Image)
			mu.Lock()
			out[m.ID] = url
			mu.Unlock()
		})
	}
	p.Wait()
	return out
}

// Views pairs members with their resolved display URLs, keeping order.
func (r *ImageResolver) Views(ctx context.Context, members []*entities.TeamMember) []*entities.TeamMemberView {
	urls := r.ResolveAll(ctx, members)
	views := make([]*entities.TeamMemberView, 0, len(members))
	for _, m := range members {
		views = append(views, entities.NewTeamMemberView(m, urls[m.ID]))
	}
	return views
}
