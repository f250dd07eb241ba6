// Package adc abstracts acquisition of calibrated voltage samples.
// The real implementation reads a sensor board over a serial line; the
// replay implementation serves scripted samples for tests and
// loopback runs.
package adc

// Source delivers one calibrated photo-sensor voltage per sampling
// tick. Calibration (raw counts to millivolts) is the board's job;
// the decoder only ever sees millivolts.
type Source interface {
	// Read returns the current sensor voltage in millivolts.
	// A failed read is non-fatal: the caller skips that tick.
	Read() (int, error)

	// Close releases the underlying device.
	Close() error
}
