package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct {
	calls  atomic.Int32
	maxAge atomic.Int64
	closed int
	err    error
}

func (f *fakeCloser) CloseAbandoned(_ context.Context, maxAge time.Duration) (int, error) {
	f.calls.Add(1)
	f.maxAge.Store(int64(maxAge))
	return f.closed, f.err
}

func TestConfigFor(t *testing.T) {
	cfg := ConfigFor(60*time.Second, 0)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 2*time.Minute, cfg.MaxAge)

	cfg = ConfigFor(30*time.Second, 10*time.Second)
	assert.Equal(t, 10*time.Second, cfg.Interval)
	assert.Equal(t, time.Minute, cfg.MaxAge)
}

func TestNew_RejectsEmptyConfig(t *testing.T) {
	_, err := New(&fakeCloser{}, Config{}, nil)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	closer := &fakeCloser{closed: 3}
	s, err := New(closer, ConfigFor(time.Minute, time.Minute), nil)
	require.NoError(t, err)

	n, err := s.Sweep(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(2*time.Minute), closer.maxAge.Load())

	closer.err = errors.New("db down")
	_, err = s.Sweep(t.Context())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = s.Sweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(2), closer.calls.Load())
}

func TestStart_RunsOnInterval(t *testing.T) {
	closer := &fakeCloser{}
	s, err := New(closer, Config{Interval: 20 * time.Millisecond, MaxAge: time.Minute}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(t.Context()))
	require.Eventually(t, func() bool { return closer.calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}
