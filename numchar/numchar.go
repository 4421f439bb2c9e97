// Package numchar provides the character-level tables shared by the
// numeric parsers and formatters: the digit table for radices 2-36 and
// the engine's whitespace classifier.
//
// The whitespace set is the engine's own fixed set of code points, not
// the full Unicode White_Space property. In particular U+00A0 (NBSP)
// and U+FEFF are NOT whitespace here; this is observed engine behavior
// and is preserved as authoritative.
package numchar

// MaxRadix is the largest radix supported anywhere in the engine.
const MaxRadix = 36

// MinRadix is the smallest radix supported anywhere in the engine.
const MinRadix = 2

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// DigitValue returns the numeric value of r as a digit (0-35) and
// whether r is a digit character at all. Letters are case-insensitive.
// Validity for a particular radix is a separate question; see IsDigit.
func DigitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// IsDigit reports whether r is a valid digit character for radix.
// Radix must be in [MinRadix, MaxRadix]; out-of-range radices match
// nothing.
func IsDigit(r rune, radix int) bool {
	if radix < MinRadix || radix > MaxRadix {
		return false
	}
	v, ok := DigitValue(r)
	return ok && v < radix
}

// DigitChar returns the lowercase character for digit value v (0-35).
// It panics if v is out of range; callers produce v from arithmetic
// that cannot exceed the radix.
func DigitChar(v int) byte {
	return digitChars[v]
}

// IsSpace reports whether r belongs to the engine's whitespace set.
//
// The set is: TAB, LF, VT, FF, CR, SPACE, U+1680, U+2000-U+200B,
// U+2028, U+2029, U+205F, U+3000. U+00A0 is deliberately excluded.
func IsSpace(r rune) bool {
	switch {
	case r == ' ':
		return true
	case r >= '\t' && r <= '\r':
		return true
	case r < 0x1680:
		return false
	case r >= 0x2000 && r <= 0x200B:
		return true
	}
	switch r {
	case 0x1680, 0x2028, 0x2029, 0x205F, 0x3000:
		return true
	}
	return false
}

// IndexOfFirstNonSpace returns the index of the first code point of s
// that is not engine whitespace, or len(s) if there is none.
func IndexOfFirstNonSpace(s string) int {
	for i, r := range s {
		if !IsSpace(r) {
			return i
		}
	}
	return len(s)
}
