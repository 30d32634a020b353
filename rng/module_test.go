package rng

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/securerand/config"
)

func TestModuleStart(t *testing.T) {
	var constructions atomic.Int32
	replaceSharedSource(t, func() Source {
		constructions.Add(1)
		return newCountingSource()
	})
	require.NoError(t, prep())
	t.Cleanup(func() {
		_ = config.SetConfigOption("random/eager_init", nil)
	})

	// lazy by default
	require.NoError(t, start())
	assert.Equal(t, int32(0), constructions.Load())

	require.NoError(t, config.SetConfigOption("random/eager_init", true))
	require.NoError(t, start())
	assert.Equal(t, int32(1), constructions.Load())

	Rand(0, 10)
	assert.Equal(t, int32(1), constructions.Load(), "source must be reused")
}

func TestModuleEagerStartFailureIsFatal(t *testing.T) {
	replaceSharedSource(t, func() Source {
		fatal(&UnrecoverableError{Op: "open /dev/urandom", Err: ErrShortRead})
		return nil
	})
	require.NoError(t, prep())
	require.NoError(t, config.SetConfigOption("random/eager_init", true))
	t.Cleanup(func() {
		_ = config.SetConfigOption("random/eager_init", nil)
	})

	err := expectFatal(t, func() {
		_ = start()
	})
	assert.ErrorIs(t, err, ErrShortRead)
}
