package rng

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tevino/abool"
	"golang.org/x/sync/errgroup"
)

// replaceSharedSource resets the shared source and makes factory its
// constructor until the end of the test.
func replaceSharedSource(t *testing.T, factory func() Source) {
	t.Helper()

	reset := func() {
		_ = closeSharedSource()
		shared = nil
		sharedOnce = sync.Once{}
		sharedInitialized.UnSet()
		sharedClosed.UnSet()
	}

	orig := newSource
	reset()
	newSource = factory

	t.Cleanup(func() {
		reset()
		newSource = orig
	})
}

// countingSource is a test double that returns a running counter.
type countingSource struct {
	next   atomic.Uint32
	closed *abool.AtomicBool
	closes atomic.Int32
}

func newCountingSource() *countingSource {
	return &countingSource{
		closed: abool.NewBool(false),
	}
}

func (s *countingSource) Uint32() uint32 {
	return s.next.Add(1)
}

func (s *countingSource) Close() error {
	s.closed.Set()
	s.closes.Add(1)
	return nil
}

// handlelessSource holds nothing that needs to be released.
type handlelessSource struct{}

func (handlelessSource) Uint32() uint32 {
	return 7
}

func TestSharedSourceIsCreatedOnce(t *testing.T) {
	var constructions atomic.Int32
	replaceSharedSource(t, func() Source {
		constructions.Add(1)
		// widen the window for racing callers
		time.Sleep(10 * time.Millisecond)
		return newCountingSource()
	})

	startSignal := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			<-startSignal
			if v := Rand(10, 19); v < 10 || v > 19 {
				return fmt.Errorf("value %d out of range", v)
			}
			return nil
		})
	}
	close(startSignal)
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), constructions.Load())

	Rand(0, 100)
	Uint32()
	assert.Equal(t, int32(1), constructions.Load(), "source must be reused")
}

func TestSharedSourceIsCreatedLazily(t *testing.T) {
	var constructions atomic.Int32
	replaceSharedSource(t, func() Source {
		constructions.Add(1)
		return newCountingSource()
	})

	assert.Equal(t, int32(0), constructions.Load())
	_ = NewMathRand()
	assert.Equal(t, int32(0), constructions.Load(), "creating a math/rand wrapper must not draw")
	Rand(1, 2)
	assert.Equal(t, int32(1), constructions.Load())
}

func TestStopClosesSharedSource(t *testing.T) {
	src := newCountingSource()
	replaceSharedSource(t, func() Source {
		return src
	})

	// nothing to close yet
	require.NoError(t, stop())
	assert.False(t, src.closed.IsSet())

	Rand(0, 1)
	require.NoError(t, stop())
	assert.True(t, src.closed.IsSet())

	// the handle is released only once
	require.NoError(t, stop())
	assert.Equal(t, int32(1), src.closes.Load())
}

func TestDrawAfterStopIsFatal(t *testing.T) {
	src := newCountingSource()
	replaceSharedSource(t, func() Source {
		return src
	})

	Rand(0, 1)
	require.NoError(t, stop())

	err := expectFatal(t, func() {
		Rand(0, 1)
	})
	assert.ErrorIs(t, err, ErrSourceClosed)
	assert.Equal(t, SourceName+" draw failed. Reason: entropy source already closed.", err.Error())
}

func TestHandlelessSourceSurvivesStop(t *testing.T) {
	replaceSharedSource(t, func() Source {
		return handlelessSource{}
	})

	assert.Equal(t, uint32(7), Uint32())
	require.NoError(t, stop())
	assert.Equal(t, uint32(7), Uint32())
}
