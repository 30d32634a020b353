package log

import (
	"fmt"
	"io"
	"os"
	"time"
)

var (
	output   io.Writer = os.Stdout
	useColor           = colorSupported()
)

// SetOutput sets the writer log lines are written to. It must be called
// before Start() and disables colored output unless the writer is stdout.
func SetOutput(w io.Writer) {
	directWriteLock.Lock()
	defer directWriteLock.Unlock()

	output = w
	useColor = w == os.Stdout && colorSupported()
}

func writeLine(line *logLine) {
	fmt.Fprintln(output, formatLine(line, useColor))
}

func startWriter() {
	shutdownWaitGroup.Add(1)
	go writer()
}

func writer() {
	defer shutdownWaitGroup.Done()

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			finalizeWriting()
			return
		}

		// give other log lines a moment to arrive, unless the buffer is full
		select {
		case <-time.After(10 * time.Millisecond):
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			finalizeWriting()
			return
		}

		writeBuffered()
	}
}

func writeBuffered() {
	directWriteLock.Lock()
	defer directWriteLock.Unlock()

	for {
		select {
		case line := <-logBuffer:
			writeLine(line)
		default:
			return
		}
	}
}

func finalizeWriting() {
	writeBuffered()

	directWriteLock.Lock()
	defer directWriteLock.Unlock()
	writeLine(&logLine{
		msg:       "===== LOGGING STOPPED =====",
		level:     WarningLevel,
		timestamp: time.Now(),
	})
}
