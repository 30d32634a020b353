package rng

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sequenceSource is a test double that returns the given values in order.
type sequenceSource struct {
	values []uint32
	drawn  int
}

func (s *sequenceSource) Uint32() uint32 {
	v := s.values[s.drawn]
	s.drawn++
	return v
}

func TestUniformSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lo        uint32
		hi        uint32
		values    []uint32
		want      uint32
		wantDrawn int
	}{
		{
			name:      "single value does not draw",
			lo:        5,
			hi:        5,
			want:      5,
			wantDrawn: 0,
		},
		{
			name:      "full range passes raw value",
			lo:        0,
			hi:        Max,
			values:    []uint32{Max},
			want:      Max,
			wantDrawn: 1,
		},
		{
			name:      "values are offset by the lower bound",
			lo:        100,
			hi:        200,
			values:    []uint32{250},
			want:      100 + 250%101,
			wantDrawn: 1,
		},
		{
			name:      "value above limit is rejected",
			lo:        0,
			hi:        2,
			values:    []uint32{Max, 5},
			want:      2,
			wantDrawn: 2,
		},
		{
			name:      "half range rejects upper half",
			lo:        0,
			hi:        1 << 31,
			values:    []uint32{1<<31 + 1, Max, 1 << 31},
			want:      1 << 31,
			wantDrawn: 3,
		},
		{
			name:      "range without zero",
			lo:        1,
			hi:        Max,
			values:    []uint32{Max, 7},
			want:      8,
			wantDrawn: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &sequenceSource{values: tt.values}
			got := newUniform(tt.lo, tt.hi).sample(src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDrawn, src.drawn)
		})
	}
}

func TestInvalidRangePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with an error, got %v", r)
		}
		assert.True(t, errors.Is(err, ErrInvalidRange))

		var rangeErr *RangeError
		if assert.True(t, errors.As(err, &rangeErr)) {
			assert.Equal(t, uint32(10), rangeErr.Min)
			assert.Equal(t, uint32(5), rangeErr.Max)
		}
	}()

	Rand(10, 5)
	t.Error("Rand must not return for an invalid range")
}
