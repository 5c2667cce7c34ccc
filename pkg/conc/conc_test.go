package conc_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rywk/dualgrid/pkg/conc"
	"github.com/stretchr/testify/require"
)

func TestRowsVisitsEveryRow(t *testing.T) {
	var seen [20]int32
	err := conc.Rows(context.Background(), 0, 20, 4, func(y int) error {
		atomic.AddInt32(&seen[y], 1)
		return nil
	})
	require.NoError(t, err)
	for y, n := range seen {
		require.Equal(t, int32(1), n, "row %d", y)
	}
}

func TestRowsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := conc.Rows(context.Background(), 0, 10, 2, func(y int) error {
		if y == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestRowsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int32
	err := conc.Rows(ctx, 0, 10, 2, func(int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestCheckAndTrySend(t *testing.T) {
	c := make(chan int, 1)
	_, ok := conc.Check(c)
	require.False(t, ok)
	require.True(t, conc.TrySend(7, c))
	require.False(t, conc.TrySend(8, c))
	v, ok := conc.Check(c)
	require.True(t, ok)
	require.Equal(t, 7, v)
}

func TestRowsLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := conc.Rows(ctx, 0, 8, 3, func(int) error { return nil })
	require.NoError(t, err)
	require.NoError(t, ctx.Err())
}

func TestLatestDropsOlderRequests(t *testing.T) {
	var l conc.Latest[int]
	_, ok := l.Check()
	require.False(t, ok)

	first := l.Next()
	second := l.Next()
	require.True(t, second(2))
	// The older request finishing last must not replace the newer result.
	require.True(t, first(1))

	v, ok := l.Check()
	require.True(t, ok)
	require.Equal(t, 2, v)
	_, ok = l.Check()
	require.False(t, ok)
}

func TestLatestOneResultPerRequest(t *testing.T) {
	var l conc.Latest[int]
	send := l.Next()
	require.True(t, send(1))
	require.False(t, send(2))
	v, ok := l.Check()
	require.True(t, ok)
	require.Equal(t, 1, v)
}
