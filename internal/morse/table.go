// Package morse implements decoding of timed light transitions into
// characters and words.
package morse

// Mark is a single element within a letter.
type Mark byte

const (
	// Dot is a short mark (light on for less than two dot units)
	Dot Mark = '.'
	// Dash is a long mark (light on for two dot units or more)
	Dash Mark = '-'
)

// Unknown is the sentinel returned for a mark sequence with no table
// entry. Decoding never fails on an unreadable letter.
const Unknown byte = '?'

// entry pairs a mark pattern with the character it decodes to.
type entry struct {
	pattern string
	letter  byte
}

// table holds the 36 letter and digit codes. A linear scan over 36
// entries is plenty fast at word cadence.
var table = [36]entry{
	{".-", 'A'}, {"-...", 'B'}, {"-.-.", 'C'}, {"-..", 'D'}, {".", 'E'},
	{"..-.", 'F'}, {"--.", 'G'}, {"....", 'H'}, {"..", 'I'}, {".---", 'J'},
	{"-.-", 'K'}, {".-..", 'L'}, {"--", 'M'}, {"-.", 'N'}, {"---", 'O'},
	{".--.", 'P'}, {"--.-", 'Q'}, {".-.", 'R'}, {"...", 'S'}, {"-", 'T'},
	{"..-", 'U'}, {"...-", 'V'}, {".--", 'W'}, {"-..-", 'X'}, {"-.--", 'Y'},
	{"--..", 'Z'}, {"-----", '0'}, {".----", '1'}, {"..---", '2'}, {"...--", '3'},
	{"....-", '4'}, {".....", '5'}, {"-....", '6'}, {"--...", '7'}, {"---..", '8'},
	{"----.", '9'},
}

// Resolve returns the character for the given mark sequence. The match
// is exact, mark for mark; anything else resolves to Unknown.
func Resolve(pattern string) byte {
	for i := range table {
		if table[i].pattern == pattern {
			return table[i].letter
		}
	}
	return Unknown
}

// PatternFor returns the mark sequence encoding the given character,
// or false if the character has no code.
func PatternFor(c byte) (string, bool) {
	for i := range table {
		if table[i].letter == c {
			return table[i].pattern, true
		}
	}
	return "", false
}
