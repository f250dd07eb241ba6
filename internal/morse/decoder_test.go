package morse

import (
	"strings"
	"testing"

	"github.com/ColonelBlimp/morserx/internal/level"
)

const testDotMS = 50

// newTestDecoder creates a decoder collecting emitted words into the
// returned slice.
func newTestDecoder(t *testing.T) (*Decoder, *[]Word) {
	t.Helper()
	d, err := NewDecoder(Config{DotMS: testDotMS})
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}
	var words []Word
	d.SetCallback(func(w Word) {
		words = append(words, w)
	})
	return d, &words
}

func rise(durationMS int) level.Edge {
	return level.Edge{LightOn: true, DurationMS: durationMS}
}

func fall(durationMS int) level.Edge {
	return level.Edge{LightOn: false, DurationMS: durationMS}
}

func TestNewDecoder_InvalidDot(t *testing.T) {
	_, err := NewDecoder(Config{DotMS: 0})
	if err != ErrInvalidDot {
		t.Errorf("NewDecoder() error = %v, want %v", err, ErrInvalidDot)
	}

	_, err = NewDecoder(Config{DotMS: -50})
	if err != ErrInvalidDot {
		t.Errorf("NewDecoder() error = %v, want %v", err, ErrInvalidDot)
	}
}

// TestDecoder_MarkClassification verifies the dot/dash decision at the
// 2*dot boundary: strictly shorter is a dot, anything else a dash.
func TestDecoder_MarkClassification(t *testing.T) {
	tests := []struct {
		name       string
		durationMS int
		want       string
	}{
		{"one dot unit", testDotMS, "E"},
		{"just under boundary", 2*testDotMS - 1, "E"},
		{"at boundary", 2 * testDotMS, "T"},
		{"three dot units", 3 * testDotMS, "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, words := newTestDecoder(t)
			d.HandleEdge(rise(0))
			d.HandleEdge(fall(tt.durationMS))
			d.Flush()

			if len(*words) != 1 || (*words)[0].Text != tt.want {
				t.Errorf("decoded %v, want [%s]", *words, tt.want)
			}
		})
	}
}

// TestDecoder_SOSScenario walks the concrete reference transmission:
// S (3x50ms marks), O (3x150ms marks), S, closed by a 350ms gap.
func TestDecoder_SOSScenario(t *testing.T) {
	d, words := newTestDecoder(t)

	edges := []level.Edge{
		rise(0), fall(50), // S: .
		rise(50), fall(50), // .
		rise(50), fall(50), // .
		rise(150), fall(150), // letter gap, O: -
		rise(50), fall(150), // -
		rise(50), fall(150), // -
		rise(150), fall(50), // letter gap, S: .
		rise(50), fall(50), // .
		rise(50), fall(50), // .
		rise(350), // word gap: boundary fires on the next rising edge
	}
	for _, e := range edges {
		d.HandleEdge(e)
	}

	if len(*words) != 1 {
		t.Fatalf("decoded %d words, want 1", len(*words))
	}
	if got := (*words)[0].Text; got != "SOS" {
		t.Errorf("decoded word = %q, want %q", got, "SOS")
	}
	if (*words)[0].Truncated {
		t.Error("word marked truncated")
	}
}

// TestDecoder_SingleMarkWord: one dot followed by a word gap emits "E".
func TestDecoder_SingleMarkWord(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(0))
	d.HandleEdge(fall(testDotMS))
	d.HandleEdge(rise(5 * testDotMS))

	if len(*words) != 1 || (*words)[0].Text != "E" {
		t.Errorf("decoded %v, want [E]", *words)
	}
}

// TestDecoder_GapClassification verifies the gap thresholds and the
// word-before-letter tie-break: a qualifying gap closes the word
// exactly once, with the pending letter flushed into it first.
func TestDecoder_GapClassification(t *testing.T) {
	tests := []struct {
		name      string
		gapMS     int
		wantWords int
		wantText  string
	}{
		{"intra-letter gap", testDotMS, 0, ""},
		{"just under letter gap", 2*testDotMS - 1, 0, ""},
		{"letter gap", 2 * testDotMS, 0, ""},
		{"just under word gap", 5*testDotMS - 1, 0, ""},
		{"word gap", 5 * testDotMS, 1, "E"},
		{"long word gap", 20 * testDotMS, 1, "E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, words := newTestDecoder(t)
			d.HandleEdge(rise(0))
			d.HandleEdge(fall(testDotMS))
			d.HandleEdge(rise(tt.gapMS))

			if len(*words) != tt.wantWords {
				t.Fatalf("decoded %d words, want %d", len(*words), tt.wantWords)
			}
			if tt.wantWords == 1 && (*words)[0].Text != tt.wantText {
				t.Errorf("decoded word = %q, want %q", (*words)[0].Text, tt.wantText)
			}
		})
	}
}

// TestDecoder_LetterGapSplitsLetters verifies a 2*dot gap closes the
// letter but not the word.
func TestDecoder_LetterGapSplitsLetters(t *testing.T) {
	d, words := newTestDecoder(t)

	// I = .. then N = -.
	d.HandleEdge(rise(0))
	d.HandleEdge(fall(50))
	d.HandleEdge(rise(50))
	d.HandleEdge(fall(50))
	d.HandleEdge(rise(150)) // letter boundary
	d.HandleEdge(fall(150))
	d.HandleEdge(rise(50))
	d.HandleEdge(fall(50))

	if len(*words) != 0 {
		t.Fatalf("word emitted before word gap: %v", *words)
	}

	d.Flush()
	if len(*words) != 1 || (*words)[0].Text != "IN" {
		t.Errorf("decoded %v, want [IN]", *words)
	}
}

// TestDecoder_SpuriousBoundaries verifies boundary events with nothing
// pending are no-ops: no empty letters, no empty words.
func TestDecoder_SpuriousBoundaries(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(10 * testDotMS))
	d.HandleEdge(rise(2 * testDotMS))
	d.Flush()

	if len(*words) != 0 {
		t.Errorf("decoded %v from boundaries alone, want nothing", *words)
	}
}

// TestDecoder_UnknownLetter: six dots has no table entry and resolves
// to the sentinel without stopping the decode.
func TestDecoder_UnknownLetter(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(0))
	for i := 0; i < 6; i++ {
		if i > 0 {
			d.HandleEdge(rise(testDotMS))
		}
		d.HandleEdge(fall(testDotMS))
	}
	d.HandleEdge(rise(3 * testDotMS)) // letter boundary
	d.HandleEdge(fall(testDotMS))     // E
	d.HandleEdge(rise(5 * testDotMS)) // word boundary

	if len(*words) != 1 || (*words)[0].Text != "?E" {
		t.Errorf("decoded %v, want [?E]", *words)
	}
}

// TestDecoder_LetterOverflow: marks past the symbol buffer capacity
// are dropped and the word is flagged truncated.
func TestDecoder_LetterOverflow(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(0))
	for i := 0; i < MaxLetterMarks+3; i++ {
		if i > 0 {
			d.HandleEdge(rise(testDotMS))
		}
		d.HandleEdge(fall(testDotMS))
	}
	d.Flush()

	if len(*words) != 1 {
		t.Fatalf("decoded %d words, want 1", len(*words))
	}
	if got := (*words)[0]; got.Text != "?" || !got.Truncated {
		t.Errorf("decoded %+v, want truncated %q", got, "?")
	}
}

// TestDecoder_WordOverflow: characters past the word buffer capacity
// are dropped and the word is flagged truncated.
func TestDecoder_WordOverflow(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(0))
	for i := 0; i < MaxWordChars+2; i++ {
		if i > 0 {
			d.HandleEdge(rise(3 * testDotMS)) // letter boundary
		}
		d.HandleEdge(fall(testDotMS)) // E
	}
	d.Flush()

	if len(*words) != 1 {
		t.Fatalf("decoded %d words, want 1", len(*words))
	}
	got := (*words)[0]
	if got.Text != strings.Repeat("E", MaxWordChars) {
		t.Errorf("decoded %d chars, want %d", len(got.Text), MaxWordChars)
	}
	if !got.Truncated {
		t.Error("word not marked truncated")
	}
}

// TestDecoder_TruncationFlagClears verifies the flag does not leak
// into the next word.
func TestDecoder_TruncationFlagClears(t *testing.T) {
	d, words := newTestDecoder(t)

	// Overflowing letter, then a word gap
	d.HandleEdge(rise(0))
	for i := 0; i < MaxLetterMarks+1; i++ {
		if i > 0 {
			d.HandleEdge(rise(testDotMS))
		}
		d.HandleEdge(fall(testDotMS))
	}
	d.HandleEdge(rise(5 * testDotMS))

	// A clean word after it
	d.HandleEdge(fall(testDotMS))
	d.HandleEdge(rise(5 * testDotMS))

	if len(*words) != 2 {
		t.Fatalf("decoded %d words, want 2", len(*words))
	}
	if !(*words)[0].Truncated {
		t.Error("first word should be truncated")
	}
	if (*words)[1].Truncated {
		t.Error("truncation flag leaked into second word")
	}
	if (*words)[1].Text != "E" {
		t.Errorf("second word = %q, want %q", (*words)[1].Text, "E")
	}
}

func TestDecoder_FlushOnEmpty(t *testing.T) {
	d, words := newTestDecoder(t)
	d.Flush()
	if len(*words) != 0 {
		t.Errorf("Flush on empty decoder emitted %v", *words)
	}
}

func TestDecoder_Reset(t *testing.T) {
	d, words := newTestDecoder(t)

	d.HandleEdge(rise(0))
	d.HandleEdge(fall(testDotMS))
	d.Reset()
	d.Flush()

	if len(*words) != 0 {
		t.Errorf("decoded %v after Reset, want nothing", *words)
	}
	marks, chars := d.Pending()
	if marks != 0 || chars != 0 {
		t.Errorf("Pending() = %d, %d after Reset, want 0, 0", marks, chars)
	}
}

// TestDecoder_NilCallback verifies emitting without a callback does
// not panic.
func TestDecoder_NilCallback(t *testing.T) {
	d, err := NewDecoder(Config{DotMS: testDotMS})
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}
	d.HandleEdge(rise(0))
	d.HandleEdge(fall(testDotMS))
	d.HandleEdge(rise(5 * testDotMS))
}
