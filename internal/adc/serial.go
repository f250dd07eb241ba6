package adc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"
)

var (
	// ErrNoPort indicates a serial port name is required
	ErrNoPort = errors.New("serial port name is required")
	// ErrInvalidBaud indicates the baud rate must be positive
	ErrInvalidBaud = errors.New("baud rate must be positive")
)

// SerialConfig holds settings for the serial sample source.
// All values come from the application config file.
type SerialConfig struct {
	// Port is the sensor board device, e.g. /dev/ttyUSB0 (from config: serial_port)
	Port string
	// Baud is the line rate (from config: serial_baud)
	Baud int
	// ReadTimeout bounds a single read; zero blocks indefinitely
	ReadTimeout time.Duration
}

// SerialSource reads millivolt samples from a sensor board that
// prints one decimal value per line, one line per sampling tick.
type SerialSource struct {
	port    io.ReadCloser
	scanner *bufio.Scanner
}

// NewSerialSource opens the configured serial port.
func NewSerialSource(cfg SerialConfig) (*SerialSource, error) {
	if cfg.Port == "" {
		return nil, ErrNoPort
	}
	if cfg.Baud <= 0 {
		return nil, ErrInvalidBaud
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}

	return NewReaderSource(port), nil
}

// NewReaderSource wraps an already-open line stream, e.g. stdin or a
// recorded capture. Same wire format as the serial board: one decimal
// millivolt value per line.
func NewReaderSource(r io.ReadCloser) *SerialSource {
	return &SerialSource{
		port:    r,
		scanner: bufio.NewScanner(r),
	}
}

// Read returns the next millivolt value from the board.
// Returns io.EOF when the stream ends.
func (s *SerialSource) Read() (int, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return 0, fmt.Errorf("read serial: %w", err)
		}
		return 0, io.EOF
	}

	line := strings.TrimSpace(s.scanner.Text())
	mv, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("parse sample %q: %w", line, err)
	}
	return mv, nil
}

// Close closes the serial port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
