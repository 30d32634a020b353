//go:build linux

package rng

import (
	"golang.org/x/sys/unix"
)

// SourceName describes the entropy source compiled for this platform.
const SourceName = "getrandom"

// getrandomAttempts is the number of getrandom(2) calls per draw before short
// reads are considered fatal.
const getrandomAttempts = 3

// getrandom is the syscall used for drawing.
var getrandom = unix.Getrandom

// getrandomSource is stateless.
type getrandomSource struct{}

func newOSSource() Source {
	return getrandomSource{}
}

// Uint32 draws 4 bytes with getrandom(2). Short reads are retried, errors are
// fatal right away.
func (getrandomSource) Uint32() uint32 {
	var buf [drawSize]byte
	for i := 0; i < getrandomAttempts; i++ {
		n, err := getrandom(buf[:], 0)
		if err != nil {
			fatal(&UnrecoverableError{Op: "getrandom()", Err: err})
		}
		if n == drawSize {
			return decodeDraw(buf[:])
		}
		shortReadsTotal.Inc()
	}

	fatal(&UnrecoverableError{Op: "getrandom()", Err: ErrTooManyRetries})
	return 0
}
