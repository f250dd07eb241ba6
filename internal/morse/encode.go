package morse

import "strings"

// Keying is one transmitter interval: the light held on or off for a
// whole number of dot units.
type Keying struct {
	On    bool
	Units int
}

// Keying weights in dot units. A dash is three dots on; the gap
// between marks is one dot off, between letters three, between words
// seven.
const (
	dotUnits       = 1
	dashUnits      = 3
	markGapUnits   = 1
	letterGapUnits = 3
	wordGapUnits   = 7
)

// EncodeText returns the keying timeline transmitting the given text.
// Input is folded to upper case; characters without a code are
// skipped. The timeline always ends with a word gap so a decoder sees
// the closing boundary before the next transmission.
func EncodeText(text string) []Keying {
	var timeline []Keying
	sentLetter := false

	for _, field := range strings.Fields(strings.ToUpper(text)) {
		for i := 0; i < len(field); i++ {
			pattern, known := PatternFor(field[i])
			if !known {
				continue
			}
			if sentLetter {
				timeline = append(timeline, Keying{On: false, Units: letterGapUnits})
			}
			timeline = appendPattern(timeline, pattern)
			sentLetter = true
		}
		if sentLetter {
			timeline = append(timeline, Keying{On: false, Units: wordGapUnits})
			sentLetter = false
		}
	}

	return timeline
}

// appendPattern emits the marks of one letter with single-dot gaps
// between them.
func appendPattern(timeline []Keying, pattern string) []Keying {
	for i := 0; i < len(pattern); i++ {
		if i > 0 {
			timeline = append(timeline, Keying{On: false, Units: markGapUnits})
		}
		units := dotUnits
		if Mark(pattern[i]) == Dash {
			units = dashUnits
		}
		timeline = append(timeline, Keying{On: true, Units: units})
	}
	return timeline
}

// Samples renders a keying timeline into the per-tick millivolt
// readings a photo-sensor would deliver: onMV while the light is on,
// offMV while it is off, one reading per sample interval.
func Samples(timeline []Keying, dotMS, intervalMS, onMV, offMV int) []int {
	var samples []int
	for _, k := range timeline {
		mv := offMV
		if k.On {
			mv = onMV
		}
		ticks := k.Units * dotMS / intervalMS
		for i := 0; i < ticks; i++ {
			samples = append(samples, mv)
		}
	}
	return samples
}
