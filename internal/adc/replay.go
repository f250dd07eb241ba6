package adc

import "io"

// ReplaySource serves scripted millivolt samples.
// Each call to Read consumes the next sample.
type ReplaySource struct {
	// Samples contains the scripted readings to return.
	Samples []int

	// Hold makes an exhausted source repeat its last sample instead
	// of returning io.EOF.
	Hold bool

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewReplaySource creates a ReplaySource over the given samples.
func NewReplaySource(samples []int) *ReplaySource {
	return &ReplaySource{Samples: samples}
}

// Read returns the next scripted sample. When the samples are
// exhausted it returns io.EOF, or repeats the last sample if Hold is
// set.
func (r *ReplaySource) Read() (int, error) {
	if r.ReadError != nil {
		return 0, r.ReadError
	}

	if r.index >= len(r.Samples) {
		if r.Hold && len(r.Samples) > 0 {
			return r.Samples[len(r.Samples)-1], nil
		}
		return 0, io.EOF
	}

	mv := r.Samples[r.index]
	r.index++
	return mv, nil
}

// Close marks the source as closed.
func (r *ReplaySource) Close() error {
	r.Closed = true
	return nil
}

// Reset rewinds the source to the first sample.
func (r *ReplaySource) Reset() {
	r.index = 0
	r.Closed = false
}
