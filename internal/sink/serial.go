package sink

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// SerialDisplay mirrors status lines to a serial console, for rigs where a
// physical controller screen hangs off a UART. Writes are best effort: a
// wedged console must never stall the wait loop.
type SerialDisplay struct {
	port *serial.Port
}

// OpenSerialDisplay opens the console port, e.g. ("/dev/ttyUSB0", 115200).
func OpenSerialDisplay(device string, baud int) (*SerialDisplay, error) {
	cfg := &serial.Config{Name: device, Baud: baud, ReadTimeout: time.Millisecond * 500}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("open serial console %s: %w", device, err)
	}
	return &SerialDisplay{port: port}, nil
}

func (d *SerialDisplay) ShowStatus(line string) {
	_, _ = d.port.Write([]byte(line + "\r\n"))
}

func (d *SerialDisplay) Reset() {
	_, _ = d.port.Write([]byte(DefaultStatusLine + "\r\n"))
}

// Close releases the port.
func (d *SerialDisplay) Close() error {
	return d.port.Close()
}
