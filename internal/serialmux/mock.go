package serialmux

import (
	"io"
	"time"
)

// MockSerialPort implements SerialPorter for testing.
type MockSerialPort struct {
	io.Reader
	io.Closer
}

// NewMockSerialMux creates a SerialMux instance backed by a mock serial
// port that emits the given line on a fixed cadence until closed.
func NewMockSerialMux(mockLine []byte, interval time.Duration) *SerialMux[*MockSerialPort] {
	r, w := io.Pipe()

	mockPort := &MockSerialPort{
		Reader: r,
		Closer: r,
	}

	// generate data periodically to simulate serial port input
	go func() {
		defer w.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := w.Write(mockLine); err != nil {
				return
			}
		}
	}()

	return NewSerialMux(mockPort)
}

// NewReaderSerialMux creates a SerialMux reading from an arbitrary
// reader, for replaying canned telemetry in tests.
func NewReaderSerialMux(r io.ReadCloser) *SerialMux[*MockSerialPort] {
	return NewSerialMux(&MockSerialPort{Reader: r, Closer: r})
}
