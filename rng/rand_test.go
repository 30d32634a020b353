package rng

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRandScenarios(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		assert.Equal(t, uint32(0), Rand(0, 0))
		assert.Equal(t, uint32(5), Rand(5, 5))
		assert.Equal(t, Max, Rand(Max, Max))
	}

	// rand(0, 1): both values, each close to 50%
	var ones int
	for i := 0; i < 10000; i++ {
		switch Rand(0, 1) {
		case 0:
		case 1:
			ones++
		default:
			t.Fatal("value out of range")
		}
	}
	// six standard deviations
	assert.InDelta(t, 5000, ones, 300, "frequency of 1 is suspicious")

	// rand(100, 200): in range and not constant
	seen := make(map[uint32]struct{})
	for i := 0; i < 1000; i++ {
		v := Rand(100, 200)
		require.GreaterOrEqual(t, v, uint32(100))
		require.LessOrEqual(t, v, uint32(200))
		seen[v] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestRandRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10000; i++ {
		bounds := []uint32{Uint32(), Uint32()}
		sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

		v := Rand(bounds[0], bounds[1])
		if v < bounds[0] || v > bounds[1] {
			t.Fatalf("Rand(%d, %d) returned %d", bounds[0], bounds[1], v)
		}
	}

	// small ranges at the edges of the value space
	for i := 0; i < 1000; i++ {
		v := Rand(Max-3, Max)
		require.GreaterOrEqual(t, v, Max-3)
		v = Rand(Min, 3)
		require.LessOrEqual(t, v, uint32(3))
	}

	// full range must work too
	Rand(Min, Max)
}

func TestRandUniformity(t *testing.T) {
	t.Parallel()

	const (
		buckets = 10
		samples = 20000
		// chi-squared critical value for 9 degrees of freedom at p = 0.0001
		criticalValue = 33.72
	)

	var counts [buckets]int
	for i := 0; i < samples; i++ {
		counts[Rand(0, buckets-1)]++
	}

	expected := float64(samples) / buckets
	var chiSquared float64
	for _, observed := range counts {
		diff := float64(observed) - expected
		chiSquared += diff * diff / expected
	}
	assert.Less(t, chiSquared, criticalValue, "distribution is not uniform: %v", counts)
}

func TestRandIsNotDeterministic(t *testing.T) {
	t.Parallel()

	sequence := func() []uint32 {
		s := make([]uint32, 16)
		for i := range s {
			s[i] = Rand(0, Max)
		}
		return s
	}
	assert.NotEqual(t, sequence(), sequence())
}

func TestRandConcurrent(t *testing.T) {
	t.Parallel()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 1000; j++ {
				if v := Rand(1, 6); v < 1 || v > 6 {
					return fmt.Errorf("value %d out of range", v)
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func TestNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), Number(0))

	seen := make(map[uint64]struct{})
	for i := 0; i < 1000; i++ {
		v := Number(10)
		require.LessOrEqual(t, v, uint64(10))
		seen[v] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)

	// must not loop forever on the full range
	Number(math.MaxUint64)
	Number(math.MaxUint64 - 1)
}

func TestRead(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 3, 4, 5, 32, 1001} {
		b := make([]byte, size)
		n, err := Read(b)
		assert.NoError(t, err)
		assert.Equal(t, size, n)
	}

	b := Bytes(64)
	assert.Len(t, b, 64)
	assert.NotEqual(t, make([]byte, 64), b)

	r := make([]byte, 32)
	_, err := io.ReadFull(Reader, r)
	assert.NoError(t, err)
	assert.False(t, bytes.Equal(r, Bytes(32)))
}

func TestMathRand(t *testing.T) {
	t.Parallel()

	r := NewMathRand()
	perm := r.Perm(20)
	sort.Ints(perm)
	for i, v := range perm {
		assert.Equal(t, i, v)
	}

	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, r.Int63(), int64(0))
		assert.Less(t, r.Intn(3), 3)
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	Rand(0, 100)

	buf := &bytes.Buffer{}
	WriteMetrics(buf)
	assert.Contains(t, buf.String(), "random_draws_total")
	assert.Contains(t, buf.String(), "random_rejections_total")
	assert.Greater(t, drawsTotal.Get(), uint64(0))
}
