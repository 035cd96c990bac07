package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("ignored", 0, func(ctx context.Context) error {
		t.Error("job with zero interval must not run")
		return nil
	})

	s.Start()
	s.Start()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnceReturnsFirstError(t *testing.T) {
	s := NewScheduler(context.Background())
	boom := errors.New("boom")
	var ran []string
	s.AddJob("a", time.Hour, func(ctx context.Context) error { ran = append(ran, "a"); return boom })
	s.AddJob("b", time.Hour, func(ctx context.Context) error { ran = append(ran, "b"); return nil })

	err := s.RunOnce(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestIdentityJobs_PurgeIdentityCache(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewCompanyCache()
	require.NoError(t, cache.Put(ctx, "42", "co-1"))

	jobs := NewIdentityJobs(cache, time.Hour, time.Minute)
	s := NewScheduler(context.Background())
	jobs.RegisterJobs(s)

	require.NoError(t, s.RunOnce(ctx))
	_, ok, err := cache.Get(ctx, "42")
	require.NoError(t, err)
	assert.True(t, ok)

	jobs.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.NoError(t, s.RunOnce(ctx))
	_, ok, err = cache.Get(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)
}
