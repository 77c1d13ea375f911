package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"onboardu/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePurger struct {
	calls int
	n     int64
	err   error
}

func (f *fakePurger) PurgeRevokedTokens(_ context.Context, _ time.Time) (int64, error) {
	f.calls++
	return f.n, f.err
}

func TestPurgeJobLogsCount(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	purger := &fakePurger{n: 3}

	scheduler.PurgeJob(purger, zap.New(core))()

	assert.Equal(t, 1, purger.calls)
	entries := logs.FilterMessage("revoked tokens purged").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
}

func TestPurgeJobLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	scheduler.PurgeJob(&fakePurger{err: errors.New("db down")}, zap.New(core))()

	assert.Equal(t, 1, logs.FilterMessage("revoked token purge failed").Len())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	_, err := scheduler.Start("every now and then", &fakePurger{}, zap.NewNop())
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	c, err := scheduler.Start("@hourly", &fakePurger{}, zap.NewNop())
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}
