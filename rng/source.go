package rng

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/tevino/abool"

	"github.com/safing/securerand/log"
)

// Source is a uniform random bit generator backed by the operating system.
// Every call to Uint32 either returns fresh entropy or terminates the process.
// Implementations must be safe for concurrent use.
type Source interface {
	Uint32() uint32
}

// Value range of a Source.
const (
	ResultBits        = 32
	Min        uint32 = 0
	Max        uint32 = math.MaxUint32
)

const drawSize = ResultBits / 8

var (
	// newSource creates the entropy source of the platform.
	newSource = newOSSource

	shared            Source
	sharedOnce        sync.Once
	sharedInitialized = abool.NewBool(false)
	sharedClosed      = abool.NewBool(false)
)

// sharedSource returns the process-wide entropy source, creating it on first use.
// Once the source released its handle, every call is fatal.
func sharedSource() Source {
	sharedOnce.Do(func() {
		shared = newSource()
		sharedInitialized.Set()
		log.Debugf("rng: initialized %s entropy source", SourceName)
	})
	if sharedClosed.IsSet() {
		fatal(&UnrecoverableError{Op: SourceName + " draw", Err: ErrSourceClosed})
	}
	return shared
}

// closeSharedSource releases the resources held by the shared source, if it
// was ever created. Sources without a handle stay usable.
func closeSharedSource() error {
	if !sharedInitialized.IsSet() {
		return nil
	}
	if closer, ok := shared.(io.Closer); ok && sharedClosed.SetToIf(false, true) {
		return closer.Close()
	}
	return nil
}

// draw pulls one value from src.
func draw(src Source) uint32 {
	drawsTotal.Inc()
	return src.Uint32()
}

func draw64(src Source) uint64 {
	return uint64(draw(src))<<32 | uint64(draw(src))
}

func decodeDraw(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
