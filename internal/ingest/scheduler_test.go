package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

type fakeRunState struct {
	mu       sync.Mutex
	last     time.Time
	setCalls int
}

func (f *fakeRunState) LastRun(ctx context.Context, key string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, nil
}

func (f *fakeRunState) SetLastRun(ctx context.Context, key string, t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = t
	f.setCalls++
	return nil
}

type countingResolver struct {
	mu    sync.Mutex
	calls int
}

func (c *countingResolver) SourcesFor(ctx context.Context, ownerID, category string) ([]domain.Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil, nil
}

func (c *countingResolver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestScheduler_SkipsWhenLastRunIsFresh(t *testing.T) {
	resolver := &countingResolver{}
	state := &fakeRunState{last: time.Now()}
	s := NewScheduler(newTestPipeline(resolver, newFakeWriter()), state, time.Hour)

	s.runIfDue(context.Background())

	assert.Equal(t, 0, resolver.count())
	assert.Equal(t, 0, state.setCalls)
}

func TestScheduler_RunsWhenOverdueAndPersistsTimestamp(t *testing.T) {
	resolver := &countingResolver{}
	state := &fakeRunState{last: time.Now().Add(-2 * time.Hour)}
	s := NewScheduler(newTestPipeline(resolver, newFakeWriter()), state, time.Hour)

	s.runIfDue(context.Background())

	assert.Equal(t, 1, resolver.count())
	assert.Equal(t, 1, state.setCalls)
	assert.WithinDuration(t, time.Now(), state.last, time.Minute)
}

func TestScheduler_ZeroLastRunMeansDue(t *testing.T) {
	resolver := &countingResolver{}
	state := &fakeRunState{}
	s := NewScheduler(newTestPipeline(resolver, newFakeWriter()), state, time.Hour)

	s.runIfDue(context.Background())
	assert.Equal(t, 1, resolver.count())
}

func TestScheduler_StartStopsOnCancel(t *testing.T) {
	resolver := &countingResolver{}
	state := &fakeRunState{last: time.Now()}
	s := NewScheduler(newTestPipeline(resolver, newFakeWriter()), state, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
