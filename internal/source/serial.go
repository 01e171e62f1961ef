package source

import (
	"fmt"
	"log/slog"

	"go.bug.st/serial"
)

// OpenSerial opens a serial port and wraps it in a LineReader.
// The reader is not started.
func OpenSerial(port string, baud, queueSize int, log *slog.Logger) (*LineReader, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", port, err)
	}
	return NewLineReader("serial:"+port, p, queueSize, log), nil
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
