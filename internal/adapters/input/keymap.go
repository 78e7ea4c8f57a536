// internal/adapters/input/keymap.go
package input

// Linux input event constants
const (
	evKey = 0x01

	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2

	keyEnter      = 28
	keyLeftShift  = 42
	keyRightShift = 54
	keyKPEnter    = 96
)

type keyChars struct {
	plain   rune
	shifted rune
}

// usKeymap maps key codes to characters on a US layout
var usKeymap = map[uint16]keyChars{
	2: {'1', '!'}, 3: {'2', '@'}, 4: {'3', '#'}, 5: {'4', '$'}, 6: {'5', '%'},
	7: {'6', '^'}, 8: {'7', '&'}, 9: {'8', '*'}, 10: {'9', '('}, 11: {'0', ')'},
	12: {'-', '_'}, 13: {'=', '+'},
	16: {'q', 'Q'}, 17: {'w', 'W'}, 18: {'e', 'E'}, 19: {'r', 'R'}, 20: {'t', 'T'},
	21: {'y', 'Y'}, 22: {'u', 'U'}, 23: {'i', 'I'}, 24: {'o', 'O'}, 25: {'p', 'P'},
	26: {'[', '{'}, 27: {']', '}'},
	30: {'a', 'A'}, 31: {'s', 'S'}, 32: {'d', 'D'}, 33: {'f', 'F'}, 34: {'g', 'G'},
	35: {'h', 'H'}, 36: {'j', 'J'}, 37: {'k', 'K'}, 38: {'l', 'L'},
	39: {';', ':'}, 40: {'\'', '"'}, 41: {'`', '~'}, 43: {'\\', '|'},
	44: {'z', 'Z'}, 45: {'x', 'X'}, 46: {'c', 'C'}, 47: {'v', 'V'}, 48: {'b', 'B'},
	49: {'n', 'N'}, 50: {'m', 'M'},
	51: {',', '<'}, 52: {'.', '>'}, 53: {'/', '?'},
	55: {'*', '*'}, 57: {' ', ' '},
	71: {'7', '7'}, 72: {'8', '8'}, 73: {'9', '9'}, 74: {'-', '-'},
	75: {'4', '4'}, 76: {'5', '5'}, 77: {'6', '6'}, 78: {'+', '+'},
	79: {'1', '1'}, 80: {'2', '2'}, 81: {'3', '3'}, 82: {'0', '0'}, 83: {'.', '.'},
	98: {'/', '/'},
}

// KeyDecoder assembles key events into scan lines
type KeyDecoder struct {
	shift bool
	line  []rune
}

// Feed consumes one input event. It returns a completed line when Enter is
// pressed on a non-empty buffer.
func (d *KeyDecoder) Feed(evType, code uint16, value int32) (string, bool) {
	if evType != evKey {
		return "", false
	}

	switch code {
	case keyLeftShift, keyRightShift:
		switch value {
		case keyPressed, keyRepeated:
			d.shift = true
		case keyReleased:
			d.shift = false
		}
		return "", false
	}

	if value != keyPressed {
		return "", false
	}

	if code == keyEnter || code == keyKPEnter {
		if len(d.line) == 0 {
			return "", false
		}
		line := string(d.line)
		d.line = d.line[:0]
		return line, true
	}

	chars, ok := usKeymap[code]
	if !ok {
		return "", false
	}
	if d.shift {
		d.line = append(d.line, chars.shifted)
	} else {
		d.line = append(d.line, chars.plain)
	}
	return "", false
}

// Reset drops any partially typed line
func (d *KeyDecoder) Reset() {
	d.shift = false
	d.line = d.line[:0]
}
