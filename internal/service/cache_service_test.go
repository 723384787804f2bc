package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

func TestCacheServiceHitAndMiss(t *testing.T) {
	repo := newFakeCacheRepo()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, 0, nil, true)
	ctx := context.Background()

	var out []string
	assert.False(t, cache.Get(ctx, "k", &out))

	cache.Set(ctx, "k", []string{"a"})
	assert.True(t, cache.Get(ctx, "k", &out))
	assert.Equal(t, []string{"a"}, out)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheMisses))
	assert.Equal(t, 0.5, testutil.ToFloat64(metrics.cacheHitRatio))
}

func TestCacheServiceDegradesOnBackendError(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.getErr = errors.New("connection refused")
	cache := NewCacheService(repo, nil, 0, nil, true)

	var out []string
	assert.False(t, cache.Get(context.Background(), "k", &out))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	cache.Set(ctx, "k", 1)
	cache.InvalidateLessons(ctx)
	assert.Empty(t, repo.data)
	assert.Empty(t, repo.invalidated)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Get(ctx, "k", new(int)))
}

func TestLessonListKey(t *testing.T) {
	assert.Equal(t, "lessons:list:course=:year=:day=", LessonListKey(models.LessonFilter{}))
	assert.Equal(t, "lessons:list:course=PIT:year=2:day=1",
		LessonListKey(models.LessonFilter{Course: strPtr("pit"), Year: intPtr(2), DayOfWeek: intPtr(1)}))
}
