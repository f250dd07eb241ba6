package morse

import (
	"errors"

	"github.com/ColonelBlimp/morserx/internal/level"
)

// Gap and mark classification thresholds, in dot units.
const (
	// DashDots is the minimum mark length classified as a dash.
	// Anything shorter is a dot.
	DashDots = 2
	// LetterGapDots is the minimum gap length ending a letter
	LetterGapDots = 2
	// WordGapDots is the minimum gap length ending a word
	WordGapDots = 5

	// MaxLetterMarks is the symbol buffer capacity in marks per letter
	MaxLetterMarks = 15
	// MaxWordChars is the word buffer capacity in characters
	MaxWordChars = 63
)

var (
	// ErrInvalidDot indicates the dot duration must be positive
	ErrInvalidDot = errors.New("dot duration must be positive")
)

// Word is one completed decoded word. Truncated is set when a letter
// or the word itself overran its buffer and marks were dropped.
type Word struct {
	Text      string
	Truncated bool
}

// WordCallback is called once per completed word, in strict signal
// order. Must be non-blocking and fast.
type WordCallback func(word Word)

// Config holds configuration for the decoder.
type Config struct {
	// DotMS is the dot unit duration in milliseconds (from config: dot_ms)
	// Dashes, letter gaps and word gaps are all ratios of this unit.
	DotMS int
}

// Decoder assembles classified marks and gaps into letters and words.
// It consumes confirmed edges from the level conditioner: falling
// edges contribute marks, rising edges close letters and words.
// Not safe for concurrent use - the receive loop is a single logical
// thread and every edge is processed to completion before the next.
type Decoder struct {
	config Config

	letter    []byte // marks of the letter being built
	word      []byte // resolved characters of the word being built
	truncated bool   // a buffer overran since the last emitted word

	callback WordCallback
}

// NewDecoder creates a decoder with the given configuration.
func NewDecoder(cfg Config) (*Decoder, error) {
	if cfg.DotMS <= 0 {
		return nil, ErrInvalidDot
	}

	return &Decoder{
		config: cfg,
		letter: make([]byte, 0, MaxLetterMarks),
		word:   make([]byte, 0, MaxWordChars),
	}, nil
}

// SetCallback sets the callback for completed words.
func (d *Decoder) SetCallback(cb WordCallback) {
	d.callback = cb
}

// HandleEdge processes one confirmed light transition. This is the
// main entry point, driven once per edge by the receive loop.
func (d *Decoder) HandleEdge(edge level.Edge) {
	if edge.LightOn {
		// Light just came on - the ended gap may close a letter or word
		d.handleGapEnd(edge.DurationMS)
	} else {
		// Light just went off - classify the ended mark
		d.handleMarkEnd(edge.DurationMS)
	}
}

// handleMarkEnd classifies the ended mark as dot or dash and appends
// it to the letter. No boundary is ever raised on a falling edge.
func (d *Decoder) handleMarkEnd(durationMS int) {
	mark := Dot
	if durationMS >= DashDots*d.config.DotMS {
		mark = Dash
	}

	if len(d.letter) == MaxLetterMarks {
		// Pathological transmission with no gap: drop the mark and
		// flag the letter instead of overrunning the buffer.
		d.truncated = true
		return
	}
	d.letter = append(d.letter, byte(mark))
}

// handleGapEnd classifies the ended gap. The word check runs strictly
// before the letter check, so a gap satisfying both closes the word
// exactly once. Gaps shorter than a letter gap separate marks within
// a letter and raise nothing.
func (d *Decoder) handleGapEnd(durationMS int) {
	switch {
	case durationMS >= WordGapDots*d.config.DotMS:
		d.flushLetter()
		d.emitWord()
	case durationMS >= LetterGapDots*d.config.DotMS:
		d.flushLetter()
	}
}

// flushLetter resolves the pending marks into a character and appends
// it to the word. A boundary with no pending marks is a no-op.
func (d *Decoder) flushLetter() {
	if len(d.letter) == 0 {
		return
	}

	c := Resolve(string(d.letter))
	d.letter = d.letter[:0]

	if len(d.word) == MaxWordChars {
		d.truncated = true
		return
	}
	d.word = append(d.word, c)
}

// emitWord delivers the pending word to the callback. An empty word
// buffer emits nothing.
func (d *Decoder) emitWord() {
	if len(d.word) == 0 {
		return
	}

	word := Word{Text: string(d.word), Truncated: d.truncated}
	d.word = d.word[:0]
	d.truncated = false

	if d.callback != nil {
		d.callback(word)
	}
}

// Flush forces out any pending letter and word. A transmission that
// ends in silence never produces the rising edge that would close its
// final word; the host calls Flush on shutdown or end of input.
func (d *Decoder) Flush() {
	d.flushLetter()
	d.emitWord()
}

// Pending returns the number of buffered marks and characters, for
// debug output.
func (d *Decoder) Pending() (marks, chars int) {
	return len(d.letter), len(d.word)
}

// Reset clears all buffers and the truncation flag.
func (d *Decoder) Reset() {
	d.letter = d.letter[:0]
	d.word = d.word[:0]
	d.truncated = false
}
