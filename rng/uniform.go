package rng

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is the base error of a RangeError.
var ErrInvalidRange = errors.New("invalid range")

// RangeError is the panic value of Rand when the lower bound is greater than
// the upper bound.
type RangeError struct {
	Min uint32
	Max uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rng: invalid range [%d, %d]: min is greater than max", e.Min, e.Max)
}

// Unwrap allows matching with ErrInvalidRange.
func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// uniform is a bounded uniform distribution over [lo, hi].
// It holds no state and is cheap to create, so every call gets a new one.
type uniform struct {
	lo uint32
	hi uint32
}

func newUniform(lo, hi uint32) uniform {
	if lo > hi {
		panic(&RangeError{Min: lo, Max: hi})
	}
	return uniform{
		lo: lo,
		hi: hi,
	}
}

// sample draws from src until a value falls below the largest multiple of the
// range size, so that the final modulo does not favor any value.
func (u uniform) sample(src Source) uint32 {
	span := u.hi - u.lo
	switch span {
	case 0:
		return u.lo
	case Max:
		return draw(src)
	}

	size := uint64(span) + 1
	limit := (uint64(1) << ResultBits) / size * size
	for {
		candidate := uint64(draw(src))
		if candidate < limit {
			return u.lo + uint32(candidate%size)
		}
		rejectionsTotal.Inc()
	}
}
