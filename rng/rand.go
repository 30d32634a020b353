package rng

import (
	"encoding/binary"
	"io"
	"math"
	mathrand "math/rand"
)

// Reader provides a global instance to read from the OS entropy source.
var Reader io.Reader = reader{}

type reader struct{}

// Rand returns a uniformly distributed number from lo to (incl.) hi.
// It panics with a *RangeError if lo is greater than hi.
// Rand is safe for concurrent use.
//
// Where the entropy source holds a handle (/dev/urandom), stopping the
// "random" module closes it and any later call terminates the process with
// ExitCodeEntropyFailure. Modules that draw while shutting down must depend on
// "random", so that they are stopped before it.
func Rand(lo, hi uint32) uint32 {
	return newUniform(lo, hi).sample(sharedSource())
}

// Uint32 returns a raw 32 bit value from the OS entropy source.
func Uint32() uint32 {
	return draw(sharedSource())
}

// Number returns a random number from 0 to (incl.) hi.
func Number(hi uint64) uint64 {
	src := sharedSource()
	if hi == math.MaxUint64 {
		return draw64(src)
	}

	size := hi + 1
	secureLimit := math.MaxUint64 - (math.MaxUint64 % size)
	for {
		candidate := draw64(src)
		if candidate < secureLimit {
			return candidate % size
		}
		rejectionsTotal.Inc()
	}
}

// Read fills b with random data. It always fills b completely and never
// returns an error, the return values only exist to satisfy io.Reader.
func Read(b []byte) (n int, err error) {
	src := sharedSource()

	var buf [drawSize]byte
	for n < len(b) {
		binary.LittleEndian.PutUint32(buf[:], draw(src))
		n += copy(b[n:], buf[:])
	}
	return n, nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) []byte {
	b := make([]byte, n)
	_, _ = Read(b)
	return b
}

// mathSource adapts the shared entropy source to math/rand.
type mathSource struct{}

var _ mathrand.Source64 = mathSource{}

// Seed is a no-op, the source can not be seeded.
func (mathSource) Seed(int64) {}

func (mathSource) Int63() int64 {
	return int64(draw64(sharedSource()) & (math.MaxUint64 >> 1))
}

func (mathSource) Uint64() uint64 {
	return draw64(sharedSource())
}

// NewMathRand returns a math/rand.Rand that draws every value from the OS
// entropy source. Use it for Shuffle, Perm and friends. Like any
// math/rand.Rand, the returned value is not safe for concurrent use.
func NewMathRand() *mathrand.Rand {
	return mathrand.New(mathSource{})
}
