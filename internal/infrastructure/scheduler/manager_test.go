package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

func TestSchedulerManager_StorageScanRunsImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	var runs atomic.Int32
	job := BatchJobFunc(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 3, nil
	})

	require.NoError(t, m.RegisterStorageScanJob(job, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "storage-scan", m.Jobs()[0].Name())
	assert.ElementsMatch(t, []string{"storage", "scan"}, m.Jobs()[0].Tags())

	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop())
}

func TestSchedulerManager_DefaultInterval(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.RegisterStorageScanJob(BatchJobFunc(func(context.Context) (int, error) { return 0, nil }), 0))
	assert.Len(t, m.Jobs(), 1)
}
