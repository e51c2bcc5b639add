package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"veab-goa.backend/internal/domain/entities"
	"veab-goa.backend/internal/usecases"
)

func TestImageResolver_Resolve(t *testing.T) {
	store := newFakeObjectStore()
	store.objects["team-images/jane.png"] = []byte("img")
	r := usecases.NewImageResolver(store, nil, "/veab", time.Minute, 2)
	ctx := context.Background()

	assert.Equal(t, entities.ImagePlaceholder, r.Resolve(ctx, entities.ParseImageRef("")))
	assert.Equal(t, "https://cdn.example.org/a.png", r.Resolve(ctx, entities.ParseImageRef("https://cdn.example.org/a.png")))
	assert.Equal(t, "/veab/images/logo.png", r.Resolve(ctx, entities.ParseImageRef("/images/logo.png")))
	assert.Equal(t, "https://signed.example/team-images/jane.png", r.Resolve(ctx, entities.ParseImageRef("team-images/jane.png")))
	assert.Equal(t, entities.ImageNotFound, r.Resolve(ctx, entities.ParseImageRef("team-images/missing.png")))
}

func TestImageResolver_LookupFailureAndNoStorage(t *testing.T) {
	store := newFakeObjectStore()
	store.signErr = errors.New("network down")
	r := usecases.NewImageResolver(store, nil, "", time.Minute, 1)
	assert.Equal(t, entities.ImageError, r.Resolve(context.Background(), entities.ParseImageRef("team-images/a.png")))

	disabled := usecases.NewImageResolver(nil, nil, "", time.Minute, 1)
	assert.Equal(t, entities.ImageNoStorage, disabled.Resolve(context.Background(), entities.ParseImageRef("team-images/a.png")))
	assert.Equal(t, "https://x.org/a.png", disabled.Resolve(context.Background(), entities.ParseImageRef("https://x.org/a.png")))
}

func TestImageResolver_CachesSignedURLsOnly(t *testing.T) {
	store := newFakeObjectStore()
	store.objects["team-images/a.png"] = []byte("img")
	cache := newMemoryURLCache()
	r := usecases.NewImageResolver(store, cache, "", 10*time.Minute, 1)
	ctx := context.Background()

	first := r.Resolve(ctx, entities.ParseImageRef("team-images/a.png"))
	second := r.Resolve(ctx, entities.ParseImageRef("team-images/a.png"))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.signed)
	assert.Equal(t, 8*time.Minute, cache.ttls["team-images/a.png"])

	r.Resolve(ctx, entities.ParseImageRef("team-images/missing.png"))
	_, cached := cache.Get(ctx, "team-images/missing.png")
	assert.False(t, cached)
}

func TestImageResolver_ResolveAllIsolatesFailures(t *testing.T) {
	store := newFakeObjectStore()
	store.objects["team-images/b.png"] = []byte("img")
	r := usecases.NewImageResolver(store, nil, "", time.Minute, 4)

	members := []*entities.TeamMember{
		{ID: "1", Image: entities.ParseImageRef("team-images/missing.png")},
		{ID: "2", Image: entities.ParseImageRef("team-images/b.png")},
		{ID: "3", Image: entities.ParseImageRef("")},
		{ID: "4", Image: entities.ParseImageRef("https://x.org/d.png")},
	}
	urls := r.ResolveAll(context.Background(), members)
	assert.Equal(t, map[string]string{
		"1": entities.ImageNotFound,
		"2": "https://signed.example/team-images/b.png",
		"3": entities.ImagePlaceholder,
		"4": "https://x.org/d.png",
	}, urls)

	views := r.Views(context.Background(), members)
	assert.Len(t, views, 4)
	assert.Equal(t, "2", views[1].ID)
	assert.Equal(t, urls["2"], views[1].DisplayImageURL)
	assert.True(t, views[1].HasImage)
	assert.False(t, views[0].HasImage)
	assert.False(t, views[2].HasImage)

	assert.Empty(t, r.ResolveAll(context.Background(), nil))
}

// gatedSigner holds every SignedURL call until want calls are in flight or
// the wait times out, and records the peak concurrency.
type gatedSigner struct {
	*fakeObjectStore
	want     int32
	wait     time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	arrived  atomic.Int32
	release  chan struct{}
	once     sync.Once
}

func newGatedSigner(want int, wait time.Duration) *gatedSigner {
	return &gatedSigner{
		fakeObjectStore: newFakeObjectStore(),
		want:            int32(want),
		wait:            wait,
		release:         make(chan struct{}),
	}
}

func (g *gatedSigner) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if g.arrived.Add(1) >= g.want {
		g.once.Do(func() { close(g.release) })
	}
	select {
	case <-g.release:
	case <-time.After(g.wait):
	}
	return "https://signed.example/" + path, nil
}

func rosterOf(n int) []*entities.TeamMember {
	members := make([]*entities.TeamMember, 0, n)
	for i := 0; i < n; i++ {
		members = append(members, &entities.TeamMember{
			ID:    fmt.Sprint(i),
			Image: entities.ParseImageRef(fmt.Sprintf("team-images/%d.png", i)),
		})
	}
	return members
}

func TestImageResolver_ResolveAllRunsRosterInOneRound(t *testing.T) {
	store := newGatedSigner(20, 2*time.Second)
	r := usecases.NewImageResolver(store, nil, "", time.Minute, 0)

	started := time.Now()
	urls := r.ResolveAll(context.Background(), rosterOf(20))

	assert.Len(t, urls, 20)
	assert.Equal(t, int32(20), store.peak.Load())
	assert.Less(t, time.Since(started), time.Second)
}

func TestImageResolver_ResolveAllHonorsWorkerCap(t *testing.T) {
	store := newGatedSigner(100, 20*time.Millisecond)
	r := usecases.NewImageResolver(store, nil, "", time.Minute, 3)

	urls := r.ResolveAll(context.Background(), rosterOf(9))

	assert.Len(t, urls, 9)
	assert.LessOrEqual(t, store.peak.Load(), int32(3))
}
