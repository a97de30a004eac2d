package workerpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Franquicias-api/internal/platform/workerpool"
)

func TestDo_ReturnsJobResult(t *testing.T) {
	p := workerpool.New(2, 4)
	defer p.Close()

	boom := errors.New("boom")
	assert.NoError(t, p.Do(context.Background(), "ok", func(context.Context) error { return nil }))
	assert.ErrorIs(t, p.Do(context.Background(), "fail", func(context.Context) error { return boom }), boom)
}

func TestDo_BoundsConcurrencyToPoolSize(t *testing.T) {
	const size = 3
	p := workerpool.New(size, 16)
	defer p.Close()

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(context.Background(), "job", func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(size))
}

func TestDo_CallerCancellationDoesNotCancelJob(t *testing.T) {
	p := workerpool.New(1, 1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var jobErr error
	err := p.Do(ctx, "job", func(jobCtx context.Context) error {
		cancel()
		jobErr = jobCtx.Err()
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, jobErr)
}

type ctxKey struct{}

func TestDo_PropagatesContextValues(t *testing.T) {
	p := workerpool.New(1, 0)
	defer p.Close()

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	var got any
	require.NoError(t, p.Do(ctx, "job", func(jobCtx context.Context) error {
		got = jobCtx.Value(ctxKey{})
		return nil
	}))
	assert.Equal(t, "req-1", got)
}

func TestDo_RecoversPanics(t *testing.T) {
	p := workerpool.New(1, 0)
	defer p.Close()

	err := p.Do(context.Background(), "panic", func(context.Context) error { panic("kaboom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	assert.NoError(t, p.Do(context.Background(), "after", func(context.Context) error { return nil }),
		"el worker sigue vivo tras el panic")
}

func TestClose_RejectsNewWorkAndIsIdempotent(t *testing.T) {
	p := workerpool.New(2, 2)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Do(context.Background(), "late", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, workerpool.ErrClosed)
}
