// Package level converts raw photo-sensor voltage samples into a
// debounced binary light state using hysteresis.
package level

import "errors"

var (
	// ErrInvalidThreshold indicates the threshold must be positive
	ErrInvalidThreshold = errors.New("threshold must be positive")
	// ErrInvalidHysteresis indicates the hysteresis band must be non-negative and below the threshold
	ErrInvalidHysteresis = errors.New("hysteresis must be non-negative and less than the threshold")
	// ErrInvalidInterval indicates the sample interval must be positive
	ErrInvalidInterval = errors.New("sample interval must be positive")
)

// Edge represents a confirmed light state transition.
// It is emitted exactly once per OFF/ON flip.
type Edge struct {
	// LightOn is true on a rising edge (light just turned on)
	LightOn bool
	// DurationMS is how long the just-ended state persisted, in milliseconds
	DurationMS int
}

// Config holds conditioner settings.
// All values come from the application config file.
type Config struct {
	// ThresholdMV is the midpoint voltage separating OFF from ON (from config: threshold_mv)
	ThresholdMV int
	// HysteresisMV is the overshoot past the threshold required to flip state (from config: hysteresis_mv)
	// A single-threshold compare chatters near the boundary; the band
	// threshold±hysteresis must be crossed fully to change state.
	HysteresisMV int
	// SampleIntervalMS is the cadence at which duration accumulates (from config: sample_interval_ms)
	SampleIntervalMS int
}

// Conditioner tracks the debounced light state and how long it has
// persisted. Not safe for concurrent use - the receive loop is a
// single logical thread.
type Conditioner struct {
	config     Config
	lightOn    bool
	durationMS int
}

// NewConditioner creates a conditioner with the given configuration.
// The initial state is OFF with zero accumulated duration.
func NewConditioner(cfg Config) (*Conditioner, error) {
	if cfg.ThresholdMV <= 0 {
		return nil, ErrInvalidThreshold
	}
	if cfg.HysteresisMV < 0 || cfg.HysteresisMV >= cfg.ThresholdMV {
		return nil, ErrInvalidHysteresis
	}
	if cfg.SampleIntervalMS <= 0 {
		return nil, ErrInvalidInterval
	}

	return &Conditioner{config: cfg}, nil
}

// Process consumes one millivolt sample and advances the state by one
// sampling tick. On a state flip it returns the edge carrying the
// pre-transition duration and true; the accumulator restarts with the
// current tick already counted for the new state. Otherwise the
// duration simply accumulates and ok is false.
func (c *Conditioner) Process(mv int) (edge Edge, ok bool) {
	on := c.nextState(mv)

	if on != c.lightOn {
		edge = Edge{LightOn: on, DurationMS: c.durationMS}
		c.lightOn = on
		c.durationMS = c.config.SampleIntervalMS
		return edge, true
	}

	c.durationMS += c.config.SampleIntervalMS
	return Edge{}, false
}

// nextState applies the hysteresis band. From OFF the sample must
// exceed threshold+hysteresis to turn ON; once ON it stays ON until
// the sample drops to threshold-hysteresis or below.
func (c *Conditioner) nextState(mv int) bool {
	if c.lightOn {
		return mv > c.config.ThresholdMV-c.config.HysteresisMV
	}
	return mv > c.config.ThresholdMV+c.config.HysteresisMV
}

// LightOn returns the current debounced light state.
func (c *Conditioner) LightOn() bool {
	return c.lightOn
}

// DurationMS returns the duration accumulated in the current state.
func (c *Conditioner) DurationMS() int {
	return c.durationMS
}

// Reset returns the conditioner to the initial OFF state with zero
// accumulated duration.
func (c *Conditioner) Reset() {
	c.lightOn = false
	c.durationMS = 0
}

// Config returns the current configuration
func (c *Conditioner) Config() Config {
	return c.config
}
