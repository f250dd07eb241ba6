package mqtt

import (
	"fmt"
	"io"

	"github.com/ColonelBlimp/morserx/internal/morse"
)

// ConsolePublisher writes decoded words to a writer. Used when no
// broker is configured.
type ConsolePublisher struct {
	w io.Writer
}

// NewConsolePublisher creates a publisher writing to w.
func NewConsolePublisher(w io.Writer) *ConsolePublisher {
	return &ConsolePublisher{w: w}
}

// Publish writes the word as a single line.
func (p *ConsolePublisher) Publish(word morse.Word) error {
	suffix := ""
	if word.Truncated {
		suffix = " (truncated)"
	}
	_, err := fmt.Fprintf(p.w, "%s%s\n", word.Text, suffix)
	return err
}

// Close is a no-op for the console.
func (p *ConsolePublisher) Close() error {
	return nil
}
