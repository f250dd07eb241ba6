package mqtt

import (
	"time"

	"github.com/ColonelBlimp/morserx/internal/morse"
)

// FakePublisher records published words for test assertions.
type FakePublisher struct {
	// Words contains all words that were published.
	Words []morse.Word

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool

	// Now, if set, replaces time.Now for payload timestamps.
	Now func() time.Time
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the word.
func (f *FakePublisher) Publish(word morse.Word) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Words = append(f.Words, word)

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	payload, err := FormatPayload(word, now())
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded words.
func (f *FakePublisher) Reset() {
	f.Words = nil
	f.Payloads = nil
	f.Closed = false
	f.PublishError = nil
}
