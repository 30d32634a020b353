//go:build !windows && !linux

package rng

import (
	"errors"
	"os"

	"github.com/safing/securerand/config"
)

// SourceName describes the entropy source compiled for this platform.
const SourceName = "device"

const defaultDevicePath = "/dev/urandom"

var (
	devicePath config.StringOption

	errNotCharDevice = errors.New("not a character device")
)

func init() {
	err := config.Register(&config.Option{
		Name:            "Entropy Device",
		Key:             "random/device_path",
		Description:     "Kernel entropy device to read from, either /dev/urandom or /dev/random. Requires restart to take effect.",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeString,
		DefaultValue:    defaultDevicePath,
		ValidationRegex: "^/dev/u?random$",
	})
	if err != nil {
		panic(err)
	}
	devicePath = config.GetAsString("random/device_path", defaultDevicePath)
}

// deviceSource keeps the entropy device open for the lifetime of the process.
type deviceSource struct {
	file *os.File
}

func newOSSource() Source {
	return openDeviceSource(devicePath())
}

// openDeviceSource opens path and checks that it is a character device, so
// that a regular file can never stand in for the kernel.
func openDeviceSource(path string) *deviceSource {
	file, err := os.Open(path)
	if err != nil {
		fatal(&UnrecoverableError{Op: "open " + path, Err: err})
	}

	info, err := file.Stat()
	switch {
	case err != nil:
		_ = file.Close()
		fatal(&UnrecoverableError{Op: "stat " + path, Err: err})
	case info.Mode()&os.ModeCharDevice == 0:
		_ = file.Close()
		fatal(&UnrecoverableError{Op: "open " + path, Err: errNotCharDevice})
	}

	return &deviceSource{
		file: file,
	}
}

// Uint32 reads exactly 4 bytes from the device.
func (s *deviceSource) Uint32() uint32 {
	var buf [drawSize]byte
	n, err := s.file.Read(buf[:])
	switch {
	case err != nil:
		fatal(&UnrecoverableError{Op: "read " + s.file.Name(), Err: err})
	case n != drawSize:
		fatal(&UnrecoverableError{Op: "read " + s.file.Name(), Err: ErrShortRead})
	}
	return decodeDraw(buf[:])
}

// Close closes the device.
func (s *deviceSource) Close() error {
	return s.file.Close()
}
