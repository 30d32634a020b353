//go:build windows

package rng

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

// SourceName describes the entropy source compiled for this platform.
const SourceName = "ProcessPrng"

// procedure is the part of *windows.LazyProc used for drawing.
type procedure interface {
	Find() error
	Call(a ...uintptr) (r1, r2 uintptr, lastErr error)
}

var (
	bcryptPrimitives = windows.NewLazySystemDLL("bcryptprimitives.dll")

	// processPrng is the procedure used for drawing.
	processPrng procedure = bcryptPrimitives.NewProc("ProcessPrng")

	errProcessPrngFailed = errors.New("returned FALSE")
)

type processPrngSource struct {
	proc procedure
}

func newOSSource() Source {
	if err := processPrng.Find(); err != nil {
		fatal(&UnrecoverableError{Op: "load ProcessPrng()", Err: err})
	}
	return &processPrngSource{
		proc: processPrng,
	}
}

// Uint32 draws 4 bytes with ProcessPrng. ProcessPrng is documented to never
// fail, so a failure is not retried.
func (s *processPrngSource) Uint32() uint32 {
	var buf [drawSize]byte
	ok, _, _ := s.proc.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ok == 0 {
		fatal(&UnrecoverableError{Op: "ProcessPrng()", Err: errProcessPrngFailed})
	}
	return decodeDraw(buf[:])
}
