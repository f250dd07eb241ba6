// Package receiver drives the sample, conditioner, decoder and sink
// stages at the configured sampling cadence.
package receiver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/ColonelBlimp/morserx/internal/adc"
	"github.com/ColonelBlimp/morserx/internal/level"
	"github.com/ColonelBlimp/morserx/internal/morse"
	"github.com/ColonelBlimp/morserx/internal/mqtt"
)

var (
	// ErrNilStage indicates a pipeline stage is missing
	ErrNilStage = errors.New("source, conditioner, decoder and publisher are all required")
	// ErrInvalidInterval indicates the sample interval must be positive
	ErrInvalidInterval = errors.New("sample interval must be positive")
)

// Config holds receiver settings.
type Config struct {
	// SampleInterval is the cadence at which the source is polled (from config: sample_interval_ms)
	SampleInterval time.Duration
	// Debug enables per-edge logging (from config: debug)
	Debug bool
}

// Receiver owns one decoding session: it polls the source every
// sampling tick, feeds the conditioner and decoder, and publishes
// completed words. One step runs to completion before the next sample
// is considered; words reach the sink in strict sample order.
type Receiver struct {
	config Config
	source adc.Source
	cond   *level.Conditioner
	dec    *morse.Decoder
	pub    mqtt.Publisher
}

// New wires the pipeline stages together. The decoder's callback is
// claimed by the receiver: completed words go to the publisher, and a
// publish failure is logged, never fatal.
func New(cfg Config, source adc.Source, cond *level.Conditioner, dec *morse.Decoder, pub mqtt.Publisher) (*Receiver, error) {
	if source == nil || cond == nil || dec == nil || pub == nil {
		return nil, ErrNilStage
	}
	if cfg.SampleInterval <= 0 {
		return nil, ErrInvalidInterval
	}

	r := &Receiver{
		config: cfg,
		source: source,
		cond:   cond,
		dec:    dec,
		pub:    pub,
	}

	dec.SetCallback(func(word morse.Word) {
		if err := r.pub.Publish(word); err != nil {
			log.Printf("publish word %q: %v", word.Text, err)
		}
	})

	return r, nil
}

// Step processes exactly one sampling tick: read, condition, decode.
// A read failure skips the tick entirely, leaving state and duration
// accounting untouched. Returns io.EOF when the source is exhausted.
func (r *Receiver) Step() error {
	mv, err := r.source.Read()
	if err != nil {
		return err
	}

	edge, ok := r.cond.Process(mv)
	if !ok {
		return nil
	}

	if r.config.Debug {
		marks, chars := r.dec.Pending()
		log.Printf("edge: on=%v duration=%dms pending=%d marks %d chars",
			edge.LightOn, edge.DurationMS, marks, chars)
	}

	r.dec.HandleEdge(edge)
	return nil
}

// Run polls the source at the sample interval until the context is
// canceled or the source is exhausted. On shutdown any pending letter
// and word are flushed so a transmission that ended in silence is not
// lost.
func (r *Receiver) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.config.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.dec.Flush()
			return nil
		case <-ticker.C:
			switch err := r.Step(); {
			case err == nil:
			case errors.Is(err, io.EOF):
				r.dec.Flush()
				return nil
			default:
				// Acquisition hiccup: skip this tick and keep going
				log.Printf("read sample: %v", err)
			}
		}
	}
}

// Drain steps through the source as fast as it delivers samples, with
// no pacing, then flushes. Used for replayed signals where the timing
// is already baked into the sample count.
func (r *Receiver) Drain() error {
	for {
		err := r.Step()
		if errors.Is(err, io.EOF) {
			r.dec.Flush()
			return nil
		}
		if err != nil {
			return err
		}
	}
}
